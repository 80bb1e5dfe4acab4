// Package genre maps the app's user-facing genres to catalog subjects.
package genre

import "strings"

// All is the explore filter value meaning "no genre filter".
const All = "Todos"

// Genre is one onboarding choice and the catalog subject slugs it covers.
type Genre struct {
	Name     string
	Subjects []string
}

// Catalog is the fixed genre table, in display order.
var Catalog = []Genre{
	{Name: "Romance", Subjects: []string{"romance", "love", "love_stories"}},
	{Name: "Misterio", Subjects: []string{"mystery", "detective_and_mystery_stories", "crime"}},
	{Name: "Fantasía", Subjects: []string{"fantasy", "epic_fantasy", "magic"}},
	{Name: "Ciencia Ficción", Subjects: []string{"science_fiction", "sci-fi", "space_opera"}},
	{Name: "Thriller", Subjects: []string{"thriller", "suspense", "psychological_thriller"}},
	{Name: "Terror", Subjects: []string{"horror", "ghost_stories", "supernatural"}},
	{Name: "Aventura", Subjects: []string{"adventure", "action", "sea_stories"}},
	{Name: "Juvenil", Subjects: []string{"young_adult", "juvenile_fiction", "teen_fiction", "coming_of_age"}},
	{Name: "Historia", Subjects: []string{"history", "historical_fiction", "world_history"}},
	{Name: "Biografía", Subjects: []string{"biography", "biographies", "memoir"}},
	{Name: "No Ficción", Subjects: []string{"nonfiction", "essays", "journalism"}},
	{Name: "Filosofía", Subjects: []string{"philosophy", "ethics", "metaphysics"}},
	{Name: "Autoayuda", Subjects: []string{"self-help", "personal_development", "motivation"}},
	{Name: "Psicología", Subjects: []string{"psychology", "mental_health", "cognitive_psychology"}},
	{Name: "Negocios", Subjects: []string{"business", "entrepreneurship", "management"}},
	{Name: "Tecnología", Subjects: []string{"technology", "computer_science", "programming"}},
	{Name: "Poesía", Subjects: []string{"poetry", "poems", "verse"}},
	{Name: "Cómics", Subjects: []string{"comics", "graphic_novels", "manga"}},
}

// bySlug indexes Catalog by slugified name so lookups ignore case and accents.
var bySlug = func() map[string]Genre {
	m := make(map[string]Genre, len(Catalog))
	for _, g := range Catalog {
		m[Slugify(g.Name)] = g
	}
	return m
}()

// Lookup finds a genre by name, ignoring case and accents.
func Lookup(name string) (Genre, bool) {
	g, ok := bySlug[Slugify(name)]
	return g, ok
}

// Names returns the genre names in display order.
func Names() []string {
	names := make([]string, len(Catalog))
	for i, g := range Catalog {
		names[i] = g.Name
	}
	return names
}

// SubjectSlugs maps genres to their subject slugs, deduplicated in order.
// Unknown genres contribute nothing.
func SubjectSlugs(genres []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, name := range genres {
		g, ok := Lookup(name)
		if !ok {
			continue
		}
		for _, s := range g.Subjects {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// IsAll reports whether name disables genre filtering.
func IsAll(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || strings.EqualFold(name, All)
}

// Matches reports whether any category belongs to genre: the category
// contains the genre name or one of its subjects, after accent folding.
// "All" matches everything.
func Matches(genreName string, categories []string) bool {
	if IsAll(genreName) {
		return true
	}

	needles := []string{Slugify(genreName)}
	if g, ok := Lookup(genreName); ok {
		for _, s := range g.Subjects {
			needles = append(needles, Slugify(s))
		}
	}

	for _, c := range categories {
		for _, part := range strings.Split(c, "/") {
			hay := Slugify(part)
			if hay == "" {
				continue
			}
			for _, n := range needles {
				if n != "" && strings.Contains(hay, n) {
					return true
				}
			}
		}
	}
	return false
}
