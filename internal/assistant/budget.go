package assistant

import (
	"fmt"
	"slices"

	"tableside/internal/catalog"
	"tableside/internal/model"

	"github.com/shopspring/decimal"
)

func budgetReply(t *turn) (Reply, bool) {
	if t.prefs.Budget > 0 {
		return budgetMenu(t, t.prefs.Budget), true
	}
	return Reply{
		Text:         "Avec plaisir ! Donnez-moi votre budget et je compose le meilleur menu possible.",
		Emotion:      EmotionThinking,
		QuickReplies: []string{"15-25", "25-40", "40-60", "60+", "Le moins cher"},
	}, true
}

// basket accumulates suggestions while staying within a budget.
type basket struct {
	limit decimal.Decimal
	total decimal.Decimal
	items []model.MenuItem
}

func (b *basket) add(it model.MenuItem, ok bool) bool {
	if !ok || b.total.Add(it.Price).GreaterThan(b.limit) {
		return false
	}
	b.items = append(b.items, it)
	b.total = b.total.Add(it.Price)
	return true
}

func find(items []model.MenuItem, keep func(model.MenuItem) bool) (model.MenuItem, bool) {
	for _, it := range items {
		if keep(it) {
			return it, true
		}
	}
	return model.MenuItem{}, false
}

func groupAbove(g catalog.Group, floor int64) func(model.MenuItem) bool {
	return func(it model.MenuItem) bool {
		return it.Group == string(g) && it.Price.GreaterThan(decimal.NewFromInt(floor))
	}
}

func groupAtMost(g catalog.Group, ceiling int64) func(model.MenuItem) bool {
	return func(it model.MenuItem) bool {
		return it.Group == string(g) && it.Price.LessThanOrEqual(decimal.NewFromInt(ceiling))
	}
}

func anyGroup(groups ...catalog.Group) func(model.MenuItem) bool {
	return func(it model.MenuItem) bool { return slices.Contains(groups, catalog.Group(it.Group)) }
}

// budgetMenu composes a menu greedily within budget. The shape of the menu
// depends on the budget tier.
func budgetMenu(t *turn, budget int) Reply {
	items := t.safe()
	b := &basket{limit: decimal.NewFromInt(int64(budget)), total: decimal.Zero}
	money := func(d decimal.Decimal) string { return d.StringFixed(2) + " " + t.currency }

	switch {
	case budget >= 60:
		b.add(find(items, anyGroup(catalog.GroupStarters)))
		b.add(find(items, groupAbove(catalog.GroupMains, 20)))
		b.add(find(items, anyGroup(catalog.GroupDesserts)))
		b.add(find(items, groupAbove(catalog.GroupDrinks, 10)))
		return Reply{
			Text: fmt.Sprintf("Pour %d %s, un menu **gastronomique** en quatre temps (%s) :\n\n"+
				"- entrée\n- plat signature\n- dessert\n- boisson", budget, t.currency, money(b.total)),
			Suggestions:  b.items,
			Emotion:      EmotionExcited,
			QuickReplies: []string{"Parfait !", "Modifier", "Autre boisson"},
		}

	case budget >= 40:
		b.add(find(items, anyGroup(catalog.GroupMains)))
		b.add(find(items, anyGroup(catalog.GroupStarters, catalog.GroupDesserts)))
		b.add(find(items, anyGroup(catalog.GroupDrinks)))
		return Reply{
			Text: fmt.Sprintf("Pour %d %s, un menu **équilibré** (%s) :\n\n"+
				"- plat principal\n- entrée ou dessert\n- boisson", budget, t.currency, money(b.total)),
			Suggestions:  b.items,
			Emotion:      EmotionHappy,
			QuickReplies: []string{"Plutôt dessert", "Plutôt entrée", "Je valide"},
		}

	case budget >= 25:
		b.add(find(items, groupAtMost(catalog.GroupMains, 22)))
		b.add(find(items, groupAtMost(catalog.GroupDrinks, 8)))
		extra := b.add(find(items, func(it model.MenuItem) bool {
			return anyGroup(catalog.GroupStarters, catalog.GroupDesserts)(it) &&
				b.total.Add(it.Price).LessThanOrEqual(b.limit)
		}))
		text := fmt.Sprintf("Pour %d %s, un menu **complet** (%s) :\n\n- plat\n- boisson", budget, t.currency, money(b.total))
		if extra {
			text += "\n- un petit bonus"
		}
		return Reply{
			Text:         text,
			Suggestions:  b.items,
			Emotion:      EmotionHappy,
			QuickReplies: []string{"Ajouter un dessert", "Autre boisson", "C'est parfait"},
		}
	}

	affordable := filter(items, func(it model.MenuItem) bool { return it.Price.LessThanOrEqual(b.limit) })
	slices.SortStableFunc(affordable, func(a, c model.MenuItem) int { return c.Price.Cmp(a.Price) })
	return Reply{
		Text:         fmt.Sprintf("Pour %d %s, voici nos meilleures options :", budget, t.currency),
		Suggestions:  top(affordable, 2),
		Emotion:      EmotionUnderstanding,
		QuickReplies: []string{"Formule du jour", "Options à partager"},
	}
}
