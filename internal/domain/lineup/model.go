package lineup

const (
	LineTypeForward = "forward"
	LineTypeDefense = "defense"
	LineTypeGoalie  = "goalie"
)

const (
	ForwardLines = 4
	DefensePairs = 3
	GoalieSlots  = 2
)

// Assignment places one rostered player into a team's lineup: a
// forward line slot, a defense pair slot or a goalie slot.
type Assignment struct {
	ID         int64
	TeamID     int64
	PlayerID   int64
	LineType   string
	LineNumber int
	Position   string
}
