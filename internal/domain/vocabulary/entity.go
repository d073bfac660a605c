package vocabulary

// Word represents a Mandarin vocabulary word with its translations
type Word struct {
	id       ID
	hanzi    string
	pinyin   string
	english  string
	german   string
	category Category
	hskLevel int
	example  Example
}

// Example is an optional example sentence for a word
type Example struct {
	Hanzi   string
	Pinyin  string
	English string
	German  string
}

// ID represents the word's unique identifier
type ID int64

// Category represents the vocabulary category
type Category string

const (
	CategoryBasics   Category = "basics"
	CategoryTech     Category = "tech"
	CategoryBusiness Category = "business"
	CategoryDaily    Category = "daily"
)

// MinHSKLevel and MaxHSKLevel bound the HSK difficulty scale.
const (
	MinHSKLevel = 1
	MaxHSKLevel = 6
)

// NewWord creates a new vocabulary word
func NewWord(hanzi, pinyin, english, german string, category Category, hskLevel int) *Word {
	return &Word{
		hanzi:    hanzi,
		pinyin:   pinyin,
		english:  english,
		german:   german,
		category: category,
		hskLevel: hskLevel,
	}
}

// Getters
func (w *Word) ID() ID             { return w.id }
func (w *Word) Hanzi() string      { return w.hanzi }
func (w *Word) Pinyin() string     { return w.pinyin }
func (w *Word) English() string    { return w.english }
func (w *Word) German() string     { return w.german }
func (w *Word) Category() Category { return w.category }
func (w *Word) HSKLevel() int      { return w.hskLevel }
func (w *Word) Example() Example   { return w.example }

// SetID sets the word ID (used by repository)
func (w *Word) SetID(id ID) {
	w.id = id
}

// SetExample attaches an example sentence
func (w *Word) SetExample(example Example) {
	w.example = example
}

// Translation renders the word's meaning for a display language mode:
// "de", "en" or "both".
func (w *Word) Translation(lang string) string {
	switch lang {
	case "de":
		return w.german
	case "en":
		return w.english
	default:
		return w.german + "  •  " + w.english
	}
}

// IsValidCategory checks if a category is valid
func IsValidCategory(category string) bool {
	switch Category(category) {
	case CategoryBasics, CategoryTech, CategoryBusiness, CategoryDaily:
		return true
	default:
		return false
	}
}

// IsValidHSKLevel checks if an HSK level is within the 1-6 scale
func IsValidHSKLevel(level int) bool {
	return level >= MinHSKLevel && level <= MaxHSKLevel
}
