package domain

// Соглашения по ключам в бакете — единое место, чтобы не расползались по коду.

func PointerKey(id Identifier) string  { return "pointers/" + id + ".json" }
func VideoPrefix(id Identifier) string { return "videos/" + id + "__" }
func VideoKey(id Identifier, rest string) string { return "videos/" + id + "__" + rest }

const MarkerPrefix = "delete_markers"
