package types

// Recipe is the cake recipe returned by the text model. ImageURL is a
// placeholder until the generated image is merged in.
type Recipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	PrepTime    string   `json:"prepTime"`
	Servings    string   `json:"servings"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Author      string   `json:"author"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Tips        []string `json:"tips"`
}

// RecipeEnvelope mirrors the top-level wrapper of the structured reply and
// is also the success body of GET /get-recipe.
type RecipeEnvelope struct {
	Response *Recipe `json:"response"`
}
