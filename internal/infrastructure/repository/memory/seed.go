package memory

import (
	"fmt"
	"math/rand"

	"github.com/claudynachos/LHL/internal/domain/player"
	"github.com/claudynachos/LHL/internal/domain/team"
)

// catalogSeed fixes the generated catalogs so every process sees the
// same player pool.
const catalogSeed = 19801001

// seedCounts leaves roughly 25% surplus over a full 12-team draft at
// every position.
var seedCounts = []struct {
	position string
	count    int
}{
	{player.PositionCenter, 60},
	{player.PositionLeftWing, 60},
	{player.PositionRightWing, 60},
	{player.PositionLeftDefense, 45},
	{player.PositionRightDefense, 45},
	{player.PositionGoalie, 30},
}

var firstNames = []string{
	"Guy", "Marcel", "Serge", "Denis", "Yvan", "Gilbert", "Jacques",
	"Bernard", "Pierre", "Michel", "Rejean", "Claude", "Andre", "Luc",
	"Mats", "Borje", "Anders", "Kent", "Peter", "Thomas", "Mike",
	"Bobby", "Brad", "Darryl", "Lanny", "Wayne", "Bryan", "Dale",
	"Rick", "Steve", "Glenn", "Billy", "Don", "Terry", "Larry", "Rod",
}

var lastNames = []string{
	"Lafleur", "Dionne", "Savard", "Potvin", "Cournoyer", "Perreault",
	"Lemaire", "Parent", "Larouche", "Goulet", "Houle", "Lemieux",
	"Boudrias", "Robitaille", "Naslund", "Salming", "Hedberg",
	"Nilsson", "Stastny", "Gradin", "Bossy", "Clarke", "Park",
	"Sittler", "McDonald", "Cashman", "Trottier", "Hawerchuk",
	"Middleton", "Shutt", "Resch", "Smith", "Edwards", "Sawchuk",
	"Robinson", "Gilbert",
}

var coachNames = []string{
	"Scotty Arbour", "Fred Bowman", "Al Shero", "Emile Irvin",
	"Toe Blake Jr.", "Punch Reay", "Glen Sather Jr.", "Roger Neilson Jr.",
	"Jack Demers", "Pat Quinn Jr.", "Bob Johnson Jr.", "Herb Williams",
	"Badger Murdoch", "Cap Patrick", "Dick Francis", "Lester Adams",
}

var coachTypes = []string{
	team.PlayStylePossession,
	team.PlayStyleTrap,
	team.PlayStyleDumpChase,
	team.PlayStyleRush,
	team.PlayStyleShootCrash,
}

// SeedPlayers generates the shared player catalog. Attributes cluster
// around the mid-70s with a thin elite tier, which is what gives the
// draft lottery its stakes.
func SeedPlayers() []player.Player {
	rng := rand.New(rand.NewSource(catalogSeed))

	var players []player.Player
	var id int64
	for _, sc := range seedCounts {
		for i := 0; i < sc.count; i++ {
			id++
			first := firstNames[rng.Intn(len(firstNames))]
			last := lastNames[rng.Intn(len(lastNames))]

			attr := func() int { return 55 + rng.Intn(36) }
			p := player.Player{
				ID:       id,
				Name:     fmt.Sprintf("%s %s", first, last),
				Position: sc.position,
				Off:      attr(),
				Def:      attr(),
				Phys:     attr(),
				Lead:     60 + rng.Intn(41),
				Const:    60 + rng.Intn(41),
				IsGoalie: sc.position == player.PositionGoalie,
			}
			if p.IsGoalie {
				// Goalies carry one generated rating across the three
				// attribute slots.
				rating := 55 + rng.Intn(36)
				p.Off, p.Def, p.Phys = rating, rating, rating
			}
			players = append(players, p)
		}
	}
	return players
}

// SeedCoaches generates the shared coach catalog, one or two strong
// enough to be worth an early draft pick.
func SeedCoaches() []player.Coach {
	rng := rand.New(rand.NewSource(catalogSeed + 1))

	coaches := make([]player.Coach, 0, len(coachNames))
	for i, name := range coachNames {
		coaches = append(coaches, player.Coach{
			ID:        int64(i + 1),
			Name:      name,
			Rating:    60 + rng.Intn(36),
			CoachType: coachTypes[rng.Intn(len(coachTypes))],
		})
	}
	return coaches
}
