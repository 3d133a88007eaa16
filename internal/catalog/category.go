package catalog

import (
	"strings"

	"tableside/internal/model"
)

// Group is a top-level section of the menu.
type Group string

const (
	GroupAll      Group = "TOUS"
	GroupStarters Group = "ENTRÉES"
	GroupMains    Group = "PLATS"
	GroupDesserts Group = "DESSERTS"
	GroupDrinks   Group = "BOISSONS"
)

// Groups lists the concrete groups in display order.
var Groups = []Group{GroupStarters, GroupMains, GroupDesserts, GroupDrinks}

// ParseGroup resolves a group name; an empty name means GroupAll.
func ParseGroup(name string) (Group, bool) {
	g := Group(strings.ToUpper(strings.TrimSpace(name)))
	if g == "" || g == GroupAll {
		return GroupAll, true
	}
	for _, known := range Groups {
		if g == known {
			return g, true
		}
	}
	return "", false
}

// Kind is a known menu category. Every category in a menu document must
// resolve to a Kind; there is no fallback for unknown names.
type Kind int

const (
	KindBreakfast Kind = iota + 1
	KindOmelettes
	KindStuffedBaguette
	KindTacos
	KindPanini
	KindMakloub
	KindPizzas
	KindSavouryCrepes
	KindSweetCrepes
	KindWaffles
	KindPancakes
	KindIceCream
	KindFrozenYogurt
	KindCoffee
	KindIcedCoffeeShots
	KindFlavouredCoffee
	KindIcedCoffee
	KindFrappuccino
	KindMilkshakes
	KindSmoothies
	KindCocktails
	KindMojitos
	KindFreshJuice
	KindIcedJuice
	KindHotChocolate
	KindIcedChocolate
	KindTea
	KindSoftDrinks
	KindShisha
)

type kindInfo struct {
	name  string
	group Group
	icon  string
}

var kinds = map[Kind]kindInfo{
	KindBreakfast:       {"PETIT DEJEUNER", GroupStarters, "sunrise"},
	KindOmelettes:       {"OMELETTES", GroupStarters, "egg"},
	KindStuffedBaguette: {"BAGUETTE FARCIE", GroupMains, "sandwich"},
	KindTacos:           {"TACOS", GroupMains, "taco"},
	KindPanini:          {"PANINI", GroupMains, "sandwich"},
	KindMakloub:         {"MA9LOUB", GroupMains, "wrap"},
	KindPizzas:          {"PIZZAS", GroupMains, "pizza"},
	KindSavouryCrepes:   {"CREPES SALÉS", GroupMains, "crepe"},
	KindSweetCrepes:     {"CREPES SUCRES", GroupDesserts, "crepe"},
	KindWaffles:         {"GAUFRE SUCRES", GroupDesserts, "waffle"},
	KindPancakes:        {"PANCAKES", GroupDesserts, "pancake"},
	KindIceCream:        {"GLACES", GroupDesserts, "ice-cream"},
	KindFrozenYogurt:    {"YAOURT GLACÉ", GroupDesserts, "ice-cream"},
	KindCoffee:          {"CAFES", GroupDrinks, "coffee"},
	KindIcedCoffeeShots: {"ACE COFFE", GroupDrinks, "coffee"},
	KindFlavouredCoffee: {"CAFE AROMATISES", GroupDrinks, "coffee"},
	KindIcedCoffee:      {"CAFE GLACES", GroupDrinks, "iced-coffee"},
	KindFrappuccino:     {"FRAPPUCCINO", GroupDrinks, "iced-coffee"},
	KindMilkshakes:      {"MILKSHAKES", GroupDrinks, "milkshake"},
	KindSmoothies:       {"SMOOTHIES", GroupDrinks, "smoothie"},
	KindCocktails:       {"COCKTAILS", GroupDrinks, "cocktail"},
	KindMojitos:         {"MJITOS", GroupDrinks, "cocktail"},
	KindFreshJuice:      {"JUS FRAIS", GroupDrinks, "juice"},
	KindIcedJuice:       {"JUS GLACES", GroupDrinks, "juice"},
	KindHotChocolate:    {"CHOCOLAT CHAUD", GroupDrinks, "mug"},
	KindIcedChocolate:   {"CHOCOLAT GLACÉ", GroupDrinks, "mug"},
	KindTea:             {"THES", GroupDrinks, "tea"},
	KindSoftDrinks:      {"BOISSONS", GroupDrinks, "bottle"},
	KindShisha:          {"CHICHA", GroupDrinks, "shisha"},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for k, info := range kinds {
		m[info.name] = k
	}
	return m
}()

// ParseKind resolves a category name, ignoring case and surrounding spaces.
func ParseKind(name string) (Kind, error) {
	if k, ok := kindsByName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return 0, model.ErrUnknownCategory
}

// Name returns the canonical category label.
func (k Kind) Name() string { return kinds[k].name }

// Group returns the menu group the category belongs to.
func (k Kind) Group() Group { return kinds[k].group }

// Icon returns the display icon key.
func (k Kind) Icon() string { return kinds[k].icon }

// KindsOf returns the kinds of a group in declaration order.
func KindsOf(g Group) []Kind {
	var out []Kind
	for k := KindBreakfast; k <= KindShisha; k++ {
		if g == GroupAll || kinds[k].group == g {
			out = append(out, k)
		}
	}
	return out
}
