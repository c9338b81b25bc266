package resource

type Capacity string

const (
	CapacitySmall  Capacity = "small"
	CapacityMedium Capacity = "medium"
	CapacityLarge  Capacity = "large"
)

func (c Capacity) String() string {
	return string(c)
}

func (c Capacity) IsValid() bool {
	switch c {
	case CapacitySmall, CapacityMedium, CapacityLarge:
		return true
	default:
		return false
	}
}

// Players is the team size the category is built for.
func (c Capacity) Players() int {
	switch c {
	case CapacitySmall:
		return 5
	case CapacityMedium:
		return 7
	case CapacityLarge:
		return 11
	default:
		return 0
	}
}

func ParseCapacity(s string) (Capacity, error) {
	c := Capacity(s)
	if !c.IsValid() {
		return "", ErrInvalidCapacity
	}
	return c, nil
}

// CapacityFromPlayers maps a 5-, 7- or 11-a-side team size to its category.
func CapacityFromPlayers(players int) (Capacity, error) {
	switch players {
	case 5:
		return CapacitySmall, nil
	case 7:
		return CapacityMedium, nil
	case 11:
		return CapacityLarge, nil
	default:
		return "", ErrInvalidCapacity
	}
}
