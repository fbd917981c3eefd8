package models

// Category is one of the closed set of expense categories the
// classifier is allowed to return.
type Category string

const (
	CategoryMercado       Category = "Mercado"
	CategoryAlimentacao   Category = "Alimentação"
	CategoryTransporte    Category = "Transporte"
	CategoryMoradia       Category = "Moradia"
	CategoryLazer         Category = "Lazer"
	CategorySaude         Category = "Saúde"
	CategoryEducacao      Category = "Educação"
	CategoryVestuario     Category = "Vestuário"
	CategoryServicos      Category = "Serviços"
	CategoryInvestimentos Category = "Investimentos"
	CategoryOutros        Category = "Outros"
)

// Categories lists every category in the order the classification
// prompt presents them.
var Categories = []Category{
	CategoryMercado,
	CategoryAlimentacao,
	CategoryTransporte,
	CategoryMoradia,
	CategoryLazer,
	CategorySaude,
	CategoryEducacao,
	CategoryVestuario,
	CategoryServicos,
	CategoryInvestimentos,
	CategoryOutros,
}

var categoryEmojis = map[Category]string{
	CategoryMercado:       "🛒",
	CategoryAlimentacao:   "🍽️",
	CategoryTransporte:    "🚗",
	CategoryMoradia:       "🏠",
	CategoryLazer:         "🎮",
	CategorySaude:         "🏥",
	CategoryEducacao:      "📚",
	CategoryVestuario:     "👕",
	CategoryServicos:      "🔧",
	CategoryInvestimentos: "💰",
	CategoryOutros:        "📦",
}

func (c Category) Valid() bool {
	_, ok := categoryEmojis[c]
	return ok
}

// Emoji returns the emoji bound to the category, falling back to the
// "Outros" emoji for anything outside the closed set.
func (c Category) Emoji() string {
	if emoji, ok := categoryEmojis[c]; ok {
		return emoji
	}
	return categoryEmojis[CategoryOutros]
}

// CategoryEmoji is a convenience for callers holding a plain string.
func CategoryEmoji(name string) string {
	return Category(name).Emoji()
}
