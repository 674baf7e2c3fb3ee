package domain

// WordDropContent es el parrafo del juego de palabras que caen.
type WordDropContent struct {
	Paragraph  string `json:"paragraph"`
	Difficulty string `json:"difficulty"`
	Theme      string `json:"theme"`
}

// WouldYouRatherQuestion es un dilema con dos opciones y su lectura.
type WouldYouRatherQuestion struct {
	ID       string `json:"id"`
	OptionA  string `json:"option_a"`
	OptionB  string `json:"option_b"`
	InsightA string `json:"insight_a"`
	InsightB string `json:"insight_b"`
}

type WouldYouRatherSet struct {
	Questions   []WouldYouRatherQuestion `json:"questions"`
	Category    string                   `json:"category"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
}

// MemoryPair es un par concepto/descripcion del juego de memoria.
type MemoryPair struct {
	ID       string `json:"id"`
	Concept  string `json:"concept"`
	Match    string `json:"match"`
	Category string `json:"category"`
}

type MemoryMatchSet struct {
	Pairs       []MemoryPair `json:"pairs"`
	Difficulty  string       `json:"difficulty"`
	Theme       string       `json:"theme"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
}

// BreathingPattern son los tiempos de cada fase en segundos.
// El modelo a veces devuelve strings, por eso se usa FlexNumber.
type BreathingPattern struct {
	Inhale FlexNumber `json:"inhale"`
	Hold1  FlexNumber `json:"hold1"`
	Exhale FlexNumber `json:"exhale"`
	Hold2  FlexNumber `json:"hold2"`
}

type BreathingExercise struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Difficulty   string           `json:"difficulty"`
	Focus        string           `json:"focus"`
	Duration     FlexString       `json:"duration"`
	Pattern      BreathingPattern `json:"pattern"`
	Instructions []string         `json:"instructions"`
	Benefits     []string         `json:"benefits"`
	Affirmations []string         `json:"affirmations"`
}
