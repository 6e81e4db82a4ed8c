package script

import "math/rand"

// Syllable tables for generated person names. Nothing clever: pick a front,
// maybe a middle, and an ending, gendered endings for first names.

var nameFronts = []string{
	"Al", "An", "Bel", "Cor", "Dan", "El", "Far", "Gal", "Har", "Il",
	"Jan", "Kas", "Lor", "Mar", "Nor", "Or", "Pel", "Quin", "Ros", "Sal",
	"Tar", "Ul", "Ver", "Wil", "Xan", "Yor", "Zel",
}

var nameMiddles = []string{
	"", "", "a", "e", "i", "o", "u", "ar", "en", "is", "on", "ur",
}

var maleEndings = []string{
	"d", "k", "n", "r", "s", "t", "dor", "gan", "mir", "ric", "ton", "us",
}

var femaleEndings = []string{
	"a", "e", "ia", "la", "na", "ra", "ssa", "tha", "wen", "ys",
}

var surnameEndings = []string{
	"berg", "dale", "ford", "grave", "holm", "land", "mann", "son", "stein", "wick",
}

// FirstName generates a first name with a gendered ending.
func FirstName(r *rand.Rand, female bool) string {
	name := nameFronts[r.Intn(len(nameFronts))] + nameMiddles[r.Intn(len(nameMiddles))]
	if female {
		return name + femaleEndings[r.Intn(len(femaleEndings))]
	}
	return name + maleEndings[r.Intn(len(maleEndings))]
}

// Surname generates a family name.
func Surname(r *rand.Rand) string {
	return nameFronts[r.Intn(len(nameFronts))] + nameMiddles[r.Intn(len(nameMiddles))] +
		surnameEndings[r.Intn(len(surnameEndings))]
}

// FullName generates "First Surname".
func FullName(r *rand.Rand, female bool) string {
	return FirstName(r, female) + " " + Surname(r)
}
