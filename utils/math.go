package utils

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

// ClampPositive clips negative values to 0; computed box
// dimensions are never negative.
func ClampPositive(x Fl) Fl {
	if x < 0 {
		return 0
	}
	return x
}
