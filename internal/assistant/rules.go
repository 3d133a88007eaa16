package assistant

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"tableside/internal/catalog"
	"tableside/internal/model"

	"github.com/shopspring/decimal"
)

// turn is the input shared by every rule for one message.
type turn struct {
	text     string
	context  string
	prefs    Preferences
	memory   Memory
	now      time.Time
	items    []model.MenuItem
	currency string
}

type rule struct {
	name    string
	match   func(*turn) bool
	respond func(*turn) (Reply, bool)
}

// contexts are checked in order; the first dictionary with a hit is the
// main context of the message.
var contexts = []struct {
	name  string
	words []string
}{
	{"greeting", []string{"bonjour", "salut", "hello", "hey", "salam", "sabah", "marhba"}},
	{"thanks", []string{"merci", "chokran", "thank you"}},
	{"help", []string{"aide", "aider", "comment", "que faire", "besoin"}},
	{"recommendation", []string{"recommande", "suggère", "conseil", "quoi prendre", "que me conseilles", "propose"}},
	{"budget", []string{"budget", "prix", "coûte", "combien", "euros", "€", "dinar", "dt", "pas cher", "économique"}},
	{"allergy", []string{"allergie", "allergique", "intolérant", "sensible à"}},
	{"vegetarian", []string{"végétarien", "vegetarien", "vegan", "végétalien", "sans viande", "végé"}},
	{"spicy", []string{"épicé", "piquant", "fort", "harissa"}},
	{"light", []string{"léger", "light", "diététique", "pas lourd", "sain", "healthy"}},
	{"hearty", []string{"copieux", "consistant", "nourrissant", "gros", "rassasiant", "beaucoup"}},
	{"quick", []string{"rapide", "vite", "pressé", "urgent", "pas le temps"}},
	{"special", []string{"spécialité", "recommandé", "populaire", "meilleur", "signature", "typique", "traditionnel"}},
	{"seafood", []string{"fruits de mer", "poisson", "saumon", "mer", "crevette", "thon", "dorade"}},
	{"meat", []string{"viande", "steak", "boeuf", "poulet", "burger", "agneau", "kefta"}},
	{"pasta", []string{"pâtes", "pasta", "spaghetti", "carbonara", "penne"}},
	{"dessert", []string{"dessert", "sucré", "gâteau", "chocolat", "doux", "baklava", "makroud"}},
	{"drink", []string{"boisson", "boire", "vin", "jus", "eau", "café", "thé", "cocktail"}},
	{"romantic", []string{"romantique", "amoureux", "couple", "date", "rendez-vous"}},
	{"birthday", []string{"anniversaire", "fête", "célébration"}},
	{"weather", []string{"chaud", "froid", "chaleur", "frais", "météo"}},
	{"mood", []string{"faim", "envie", "gourmand", "humeur", "feeling"}},
	{"tunisian", []string{"tunisien", "tunisienne", "local", "traditionnel", "du pays"}},
}

func detectContext(text string) string {
	for _, c := range contexts {
		if containsAny(text, c.words) {
			return c.name
		}
	}
	return ""
}

var (
	digits = regexp.MustCompile(`\d`)

	meatWords    = []string{"viande", "poulet", "boeuf", "bœuf", "steak", "burger", "kefta", "escalope", "merguez", "agneau", "jambon", "salami"}
	seafoodWords = []string{"saumon", "poisson", "thon", "crevette", "fruits de mer", "dorade"}
	pastaWords   = []string{"pâtes", "pasta", "spaghetti", "carbonara", "penne", "lasagne"}
	spicyWords   = []string{"épicé", "piquant", "harissa", "merguez", "diable"}
	freshWords   = []string{"salade", "légumes", "fruits"}
	localWords   = []string{"tunisien", "traditionnel", "ma9loub", "makloub"}

	quickCategories = []string{
		catalog.KindOmelettes.Name(),
		catalog.KindPanini.Name(),
		catalog.KindStuffedBaguette.Name(),
		catalog.KindTacos.Name(),
	}
)

func onContext(name string) func(*turn) bool {
	return func(t *turn) bool { return t.context == name }
}

var rules = []rule{
	{
		name:  "local-expressions",
		match: func(t *turn) bool { return containsAny(t.text, []string{"yahassal", "barsha behi", "mouch behi"}) },
		respond: func(t *turn) (Reply, bool) {
			if strings.Contains(t.text, "yahassal") || strings.Contains(t.text, "barsha behi") {
				return Reply{
					Text:         "Chokran ! Ravi que ça vous plaise.",
					Emotion:      EmotionHappy,
					QuickReplies: []string{"Autre chose ?", "Voir le panier", "Recommandations"},
				}, true
			}
			return Reply{
				Text:         "Désolé que cela ne vous convienne pas. Dites-moi ce qui ne va pas et je cherche mieux.",
				Emotion:      EmotionUnderstanding,
				QuickReplies: []string{"Autre style de plat", "Budget différent", "Autres préférences"},
			}, true
		},
	},
	{name: "greeting", match: onContext("greeting"), respond: greetingReply},
	{name: "thanks", match: onContext("thanks"), respond: func(*turn) (Reply, bool) {
		return Reply{
			Text:         "Avec plaisir, b'sahtek ! Je reste là si besoin.",
			Emotion:      EmotionHappy,
			QuickReplies: []string{"Ajouter une boisson", "Un dessert ?", "Finaliser"},
		}, true
	}},
	{name: "help", match: onContext("help"), respond: func(*turn) (Reply, bool) {
		return Reply{
			Text: "Dites-moi simplement ce qui vous ferait plaisir. Par exemple :\n\n" +
				"- *« un budget de 30 dinars »*\n" +
				"- *« je suis allergique au gluten »*\n" +
				"- *« quelque chose de rapide »*",
			Emotion:      EmotionUnderstanding,
			QuickReplies: []string{"Recommandations", "J'ai un budget", "Allergies"},
		}, true
	}},
	{name: "recommendation", match: onContext("recommendation"), respond: recommend},
	{name: "budget", match: onContext("budget"), respond: budgetReply},
	{name: "allergy", match: onContext("allergy"), respond: allergyReply},
	{name: "vegetarian", match: onContext("vegetarian"), respond: func(t *turn) (Reply, bool) {
		veg := filter(t.safe(), func(it model.MenuItem) bool {
			return it.Group == string(catalog.GroupStarters) || mentions(it, "légumes") ||
				(!mentions(it, meatWords...) && !mentions(it, seafoodWords...))
		})
		return suggest("Voici notre sélection **végétarienne** :", EmotionHappy, top(veg, 3),
			"Options vegan", "Protéines végétales")
	}},
	{name: "spicy", match: onContext("spicy"), respond: func(t *turn) (Reply, bool) {
		hot := filter(t.safe(), func(it model.MenuItem) bool { return mentions(it, spicyWords...) })
		if len(hot) == 0 {
			return Reply{}, false
		}
		return suggest("Pour les amateurs de **piquant** :", EmotionExcited, top(hot, 3),
			"Encore plus fort", "Quelque chose de doux")
	}},
	{name: "light", match: onContext("light"), respond: func(t *turn) (Reply, bool) {
		light := filter(t.safe(), func(it model.MenuItem) bool {
			return it.Group == string(catalog.GroupStarters) || mentions(it, freshWords...)
		})
		return suggest("Léger mais plein de goût :", EmotionHappy, top(light, 3),
			"Riche en protéines", "Végétarien léger")
	}},
	{name: "hearty", match: onContext("hearty"), respond: func(t *turn) (Reply, bool) {
		mains := inGroup(t.safe(), catalog.GroupMains)
		slices.SortStableFunc(mains, func(a, b model.MenuItem) int { return b.Price.Cmp(a.Price) })
		return suggest("Pour les grands appétits, nos plats les plus **copieux** :", EmotionExcited, top(mains, 3),
			"Avec une entrée", "Menu complet")
	}},
	{name: "quick", match: onContext("quick"), respond: func(t *turn) (Reply, bool) {
		quick := filter(t.safe(), func(it model.MenuItem) bool { return slices.Contains(quickCategories, it.Category) })
		return suggest("Service **express** : ces plats sont prêts rapidement.", EmotionUnderstanding, top(quick, 3),
			"Le plus rapide", "Une boisson avec ?")
	}},
	{name: "special", match: onContext("special"), respond: func(t *turn) (Reply, bool) {
		return suggest("Les **spécialités** de la maison :", EmotionExcited, top(inGroup(t.safe(), catalog.GroupMains), 3),
			"Conseil du chef", "Autre suggestion")
	}},
	{name: "seafood", match: onContext("seafood"), respond: func(t *turn) (Reply, bool) {
		fish := filter(t.safe(), func(it model.MenuItem) bool { return mentions(it, seafoodWords...) })
		if len(fish) == 0 {
			return Reply{}, false
		}
		return suggest("Côté **mer**, je vous recommande :", EmotionExcited, top(fish, 3),
			"Préparation ?", "Accompagnement")
	}},
	{name: "meat", match: onContext("meat"), respond: func(t *turn) (Reply, bool) {
		meat := filter(t.safe(), func(it model.MenuItem) bool { return mentions(it, meatWords...) })
		return suggest("Pour les amateurs de **viande** :", EmotionExcited, meat,
			"Quelle cuisson ?", "Sauce maison")
	}},
	{name: "pasta", match: onContext("pasta"), respond: func(t *turn) (Reply, bool) {
		pasta := filter(t.safe(), func(it model.MenuItem) bool { return mentions(it, pastaWords...) })
		return suggest("Nos **pâtes** :", EmotionHappy, pasta,
			"Sans gluten ?", "Sauce signature")
	}},
	{name: "dessert", match: onContext("dessert"), respond: func(t *turn) (Reply, bool) {
		return suggest("La touche **sucrée** pour finir :", EmotionExcited, inGroup(t.safe(), catalog.GroupDesserts),
			"Le plus chocolaté", "Option légère")
	}},
	{name: "drink", match: onContext("drink"), respond: func(t *turn) (Reply, bool) {
		return suggest("Que souhaitez-vous **boire** ?", EmotionHappy, inGroup(t.safe(), catalog.GroupDrinks),
			"Cocktails maison", "Thé à la menthe")
	}},
	{name: "romantic", match: onContext("romantic"), respond: func(t *turn) (Reply, bool) {
		var picks []model.MenuItem
		for _, g := range []catalog.Group{catalog.GroupMains, catalog.GroupDesserts} {
			if it, ok := firstIn(t.safe(), g); ok {
				picks = append(picks, it)
			}
		}
		return suggest("Un dîner **à deux** ? Voici un menu pour l'occasion :", EmotionExcited, picks,
			"Dessert à partager", "Menu surprise")
	}},
	{name: "birthday", match: onContext("birthday"), respond: func(t *turn) (Reply, bool) {
		return suggest("**Joyeux anniversaire !** Nos desserts pour fêter ça :", EmotionExcited, inGroup(t.safe(), catalog.GroupDesserts),
			"Menu anniversaire", "Menu groupe")
	}},
	{name: "weather", match: onContext("weather"), respond: weatherReply},
	{name: "mood", match: onContext("mood"), respond: moodReply},
	{name: "tunisian", match: onContext("tunisian"), respond: func(t *turn) (Reply, bool) {
		local := filter(t.safe(), func(it model.MenuItem) bool { return mentions(it, localWords...) })
		if len(local) == 0 {
			return suggest("Notre carte s'inspire de la Méditerranée. Ces plats ont l'esprit du pays :", EmotionExcited,
				top(inGroup(t.safe(), catalog.GroupMains), 3), "Thé à la menthe", "Entrées")
		}
		return suggest("Les saveurs **tunisiennes** de la maison :", EmotionExcited, local,
			"Boisson traditionnelle", "Menu complet")
	}},
	{
		name:    "explicit-recommendation",
		match:   func(t *turn) bool { return containsAny(t.text, []string{"recommande", "ne sais pas"}) },
		respond: recommend,
	},
	{
		name:  "number-without-budget",
		match: func(t *turn) bool { return digits.MatchString(t.text) && t.prefs.Budget == 0 },
		respond: func(*turn) (Reply, bool) {
			return Reply{
				Text:         "Je vois un chiffre. Est-ce votre budget ou le nombre de personnes ?",
				Emotion:      EmotionThinking,
				QuickReplies: []string{"C'est mon budget", "Nombre de personnes", "Autre chose"},
			}, true
		},
	},
	{
		name:  "question",
		match: func(t *turn) bool { return containsAny(t.text, []string{"?", "quel", "comment"}) },
		respond: func(*turn) (Reply, bool) {
			return Reply{
				Text: "Bonne question ! Pouvez-vous préciser ?\n\n" +
					"- un plat en particulier\n" +
					"- les ingrédients ou allergènes\n" +
					"- nos spécialités",
				Emotion:      EmotionThinking,
				QuickReplies: []string{"Ingrédients et allergènes", "Temps de préparation", "Spécialités"},
			}, true
		},
	},
}

func fallback(*turn) Reply {
	return Reply{
		Text: "Je veux vous aider au mieux. Dites-m'en un peu plus :\n\n" +
			"- le type de plat\n" +
			"- votre budget\n" +
			"- vos allergies ou l'occasion",
		Emotion:      EmotionThinking,
		QuickReplies: []string{"Surprenez-moi", "Budget 40", "Plat signature"},
	}
}

func greetingReply(t *turn) (Reply, bool) {
	var hello string
	switch h := t.now.Hour(); {
	case h >= 5 && h < 12:
		hello = "Sabah el khir !"
	case h >= 12 && h < 18:
		hello = "Bonjour !"
	default:
		hello = "Bonsoir !"
	}
	return Reply{
		Text:         hello + " Bienvenue. Une envie particulière, ou je vous propose nos spécialités ?",
		Emotion:      EmotionHappy,
		QuickReplies: []string{"Spécialités tunisiennes", "Menu avec budget", "Je ne sais pas quoi prendre"},
	}, true
}

func allergyReply(t *turn) (Reply, bool) {
	if len(t.prefs.Allergies) == 0 {
		return Reply{
			Text:         "Je prends les allergies au sérieux. Lesquelles dois-je éviter ? (gluten, lactose, fruits de mer, noix, œuf, soja...)",
			Emotion:      EmotionUnderstanding,
			QuickReplies: []string{"Gluten", "Lactose", "Fruits de mer", "Noix", "Œuf"},
		}, true
	}
	return suggest("C'est noté, j'évite : **"+strings.Join(t.memory.Allergies, ", ")+"**. Ces plats sont sans risque :",
		EmotionUnderstanding, top(t.safe(), 3), "Autres options", "Parler au chef")
}

func weatherReply(t *turn) (Reply, bool) {
	month := t.now.Month()
	summer := month >= time.June && month <= time.September
	if strings.Contains(t.text, "chaud") || summer {
		fresh := filter(t.safe(), func(it model.MenuItem) bool {
			return it.Group == string(catalog.GroupStarters) || it.Group == string(catalog.GroupDrinks) || mentions(it, "salade")
		})
		return suggest("Avec cette chaleur, un peu de **fraîcheur** :", EmotionUnderstanding, top(fresh, 3),
			"Boissons fraîches", "Glaces")
	}
	return suggest("Pour se réchauffer, un plat **réconfortant** :", EmotionUnderstanding,
		top(inGroup(t.safe(), catalog.GroupMains), 3), "Thé chaud", "Chocolat chaud")
}

func moodReply(t *turn) (Reply, bool) {
	items := t.safe()
	switch t.prefs.Mood {
	case "très faim":
		big := filter(inGroup(items, catalog.GroupMains), func(it model.MenuItem) bool {
			return it.Price.GreaterThan(decimal.NewFromInt(15))
		})
		return suggest("Une faim de loup ? Voici de quoi vous rassasier :", EmotionUnderstanding, top(big, 3),
			"Avec entrée", "Menu complet")
	case "petite faim":
		small := filter(items, func(it model.MenuItem) bool {
			return it.Group == string(catalog.GroupStarters) || it.Price.LessThan(decimal.NewFromInt(15))
		})
		return suggest("Pour une petite faim :", EmotionThinking, top(small, 3),
			"Ajouter un dessert", "Quelque chose de sucré")
	case "aventureux":
		return suggest("Un esprit curieux ! Laissez-vous surprendre :", EmotionExcited,
			top(inGroup(items, catalog.GroupMains), 3), "Le plus original", "Surprise du chef")
	}
	return Reply{}, false
}

func recommend(t *turn) (Reply, bool) {
	items := t.safe()
	if t.memory.Budget > 0 {
		limit := decimal.NewFromInt(int64(t.memory.Budget))
		items = filter(items, func(it model.MenuItem) bool { return it.Price.LessThanOrEqual(limit) })
	}

	lead := "Pour cette belle soirée,"
	switch h := t.now.Hour(); {
	case h >= 12 && h < 15:
		lead = "Pour ce déjeuner,"
		items = inGroup(items, catalog.GroupMains, catalog.GroupStarters)
	case h >= 15 && h < 18:
		lead = "Pour cette pause gourmande,"
		items = inGroup(items, catalog.GroupDesserts, catalog.GroupDrinks)
	}

	var picks []model.MenuItem
	for _, g := range []catalog.Group{catalog.GroupStarters, catalog.GroupMains, catalog.GroupDesserts} {
		if it, ok := firstIn(items, g); ok {
			picks = append(picks, it)
		}
	}

	text := lead + " voici ma recommandation personnalisée."
	if len(t.memory.Allergies) > 0 {
		text += "\n\nSans " + strings.Join(t.memory.Allergies, ", ") + "."
	}
	if len(t.memory.Dietary) > 0 {
		text += "\n\nRespecte votre régime : " + strings.Join(t.memory.Dietary, ", ") + "."
	}

	return Reply{
		Text:         text,
		Suggestions:  picks,
		Emotion:      EmotionExcited,
		QuickReplies: []string{"Pourquoi ces choix ?", "Autre suggestion", "C'est parfait"},
	}, true
}

func suggest(text string, emotion Emotion, items []model.MenuItem, quick ...string) (Reply, bool) {
	return Reply{
		Text:         text,
		Suggestions:  items,
		Emotion:      emotion,
		QuickReplies: quick,
	}, true
}

// safe returns the items compatible with the remembered allergies and diet.
func (t *turn) safe() []model.MenuItem {
	veg := t.memory.vegetarian()
	return filter(t.items, func(it model.MenuItem) bool {
		if mentions(it, t.memory.Allergies...) {
			return false
		}
		return !veg || !mentions(it, meatWords...)
	})
}

func mentions(it model.MenuItem, words ...string) bool {
	text := strings.ToLower(it.Name + " " + it.Description)
	return containsAny(text, words)
}

func filter(items []model.MenuItem, keep func(model.MenuItem) bool) []model.MenuItem {
	var out []model.MenuItem
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func inGroup(items []model.MenuItem, groups ...catalog.Group) []model.MenuItem {
	return filter(items, func(it model.MenuItem) bool {
		return slices.Contains(groups, catalog.Group(it.Group))
	})
}

func firstIn(items []model.MenuItem, g catalog.Group) (model.MenuItem, bool) {
	for _, it := range items {
		if it.Group == string(g) {
			return it, true
		}
	}
	return model.MenuItem{}, false
}

func top(items []model.MenuItem, n int) []model.MenuItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}
