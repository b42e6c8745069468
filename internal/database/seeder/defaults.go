package seeder

const DefaultFixturePath = "fixtures/demo.yaml"

func Defaults(fixturePath string) []Seeder {
	if fixturePath == "" {
		fixturePath = DefaultFixturePath
	}
	return []Seeder{
		FixtureSeeder{Path: fixturePath},
	}
}
