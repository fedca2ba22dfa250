package catalog

type Action string

const (
	ActionPet        Action = "pet"
	ActionGreet      Action = "greet"
	ActionFlip       Action = "flip"
	ActionSlots      Action = "slots"
	ActionCollection Action = "collection"
	ActionSocial     Action = "social"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythical  Rarity = "mythical"
)

// Breed is a static dog catalog entry. XPBonus is the collection
// multiplier granted while the breed is owned; Unlock is the cumulative
// action count required to add it to a collection.
type Breed struct {
	ID          string
	Name        string
	Rarity      Rarity
	XPBonus     float64
	Unlock      Condition
}

// Challenge is a static challenge catalog entry. Daily challenges can be
// completed once per calendar day; one-time challenges once per wallet.
type Challenge struct {
	ID      string
	Title   string
	Action  Action
	Target  int64
	Reward  int64
	OneTime bool
}

var Breeds = []Breed{
	{ID: "shiba", Name: "Shiba", Rarity: RarityCommon, XPBonus: 1.0, Unlock: Condition{ActionPet, 10}},
	{ID: "husky", Name: "Husky", Rarity: RarityRare, XPBonus: 1.2, Unlock: Condition{ActionPet, 50}},
	{ID: "golden", Name: "Golden Retriever", Rarity: RarityEpic, XPBonus: 1.5, Unlock: Condition{ActionPet, 100}},
	{ID: "samoyed", Name: "Samoyed", Rarity: RarityLegendary, XPBonus: 2.0, Unlock: Condition{ActionPet, 200}},
	{ID: "poodle", Name: "Poodle", Rarity: RarityRare, XPBonus: 1.3, Unlock: Condition{ActionGreet, 20}},
	{ID: "bulldog", Name: "Bulldog", Rarity: RarityEpic, XPBonus: 1.6, Unlock: Condition{ActionGreet, 50}},
	{ID: "dalmatian", Name: "Dalmatian", Rarity: RarityLegendary, XPBonus: 2.2, Unlock: Condition{ActionGreet, 100}},
	{ID: "chihuahua", Name: "Chihuahua", Rarity: RarityCommon, XPBonus: 1.1, Unlock: Condition{ActionFlip, 10}},
	{ID: "german_shepherd", Name: "German Shepherd", Rarity: RarityRare, XPBonus: 1.4, Unlock: Condition{ActionFlip, 25}},
	{ID: "border_collie", Name: "Border Collie", Rarity: RarityEpic, XPBonus: 1.7, Unlock: Condition{ActionFlip, 50}},
	{ID: "great_dane", Name: "Great Dane", Rarity: RarityLegendary, XPBonus: 2.5, Unlock: Condition{ActionFlip, 100}},
	{ID: "pomeranian", Name: "Pomeranian", Rarity: RarityCommon, XPBonus: 1.1, Unlock: Condition{ActionSlots, 5}},
	{ID: "labrador", Name: "Labrador", Rarity: RarityRare, XPBonus: 1.3, Unlock: Condition{ActionSlots, 15}},
	{ID: "saint_bernard", Name: "Saint Bernard", Rarity: RarityEpic, XPBonus: 1.8, Unlock: Condition{ActionSlots, 30}},
	{ID: "wolf", Name: "Wolf", Rarity: RarityMythical, XPBonus: 3.0, Unlock: Condition{ActionSlots, 50}},
}

var DailyChallenges = []Challenge{
	{ID: "pet_master", Title: "Pet Master", Action: ActionPet, Target: 10, Reward: 500},
	{ID: "greet_king", Title: "Greet King", Action: ActionGreet, Target: 5, Reward: 300},
	{ID: "lucky_streak", Title: "Lucky Streak", Action: ActionFlip, Target: 3, Reward: 400},
	{ID: "slot_legend", Title: "Slot Legend", Action: ActionSlots, Target: 5, Reward: 1000},
	{ID: "collection_hunter", Title: "Collection Hunter", Action: ActionCollection, Target: 2, Reward: 750},
}

var SpecialChallenges = []Challenge{
	{ID: "x_follower", Title: "X Follower", Action: ActionSocial, Target: 1, Reward: 1000, OneTime: true},
}

func BreedByID(id string) (Breed, bool) {
	for _, b := range Breeds {
		if b.ID == id {
			return b, true
		}
	}
	return Breed{}, false
}

func ChallengeByID(id string) (Challenge, bool) {
	for _, c := range DailyChallenges {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range SpecialChallenges {
		if c.ID == id {
			return c, true
		}
	}
	return Challenge{}, false
}
