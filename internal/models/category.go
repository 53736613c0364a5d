package models

// CategoryConfig is one entry of categories.yaml: a cash movement whose payee
// contains one of Keywords is filed under Name.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the `categories:` layout of categories.yaml. A bare list
// of CategoryConfig is accepted as well.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// PayeesConfig is payees.yaml: exact payee (case-insensitive) to category.
type PayeesConfig struct {
	Payees map[string]string `yaml:"payees"`
}
