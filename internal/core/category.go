package core

// Category classifies transactions and budgets. Transfers carry no category.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryTransport Category = "transport"
	CategoryHousing   Category = "housing"
	CategoryHealth    Category = "health"
	CategoryLeisure   Category = "leisure"
	CategorySalary    Category = "salary"
	CategoryFreelance Category = "freelance"
	CategoryOther     Category = "other"
	CategoryNone      Category = ""
)

var incomeCategories = map[Category]bool{
	CategorySalary:    true,
	CategoryFreelance: true,
	CategoryOther:     true,
}

// IsIncome reports whether the category sits on the income side of the
// taxonomy.
func (c Category) IsIncome() bool {
	return incomeCategories[c]
}

// IsExpense reports whether the category sits on the expense side.
func (c Category) IsExpense() bool {
	return c != CategoryNone && !incomeCategories[c]
}

// Owner is the person a payment or account belongs to. Owners are shared
// references: accounts and transactions point at the same Owner value.
type Owner struct {
	Name  string
	Email string
}
