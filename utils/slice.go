package utils

// UniqueUint removes duplicate values from a slice of uints.
func UniqueUint(slice []uint) []uint {
	keys := make(map[uint]bool)
	list := []uint{}
	for _, entry := range slice {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

// ContainsUint reports whether value is present in the slice.
func ContainsUint(slice []uint, value uint) bool {
	for _, entry := range slice {
		if entry == value {
			return true
		}
	}
	return false
}

// RemoveUint returns the slice without any occurrence of value, keeping
// the order of the remaining entries.
func RemoveUint(slice []uint, value uint) []uint {
	list := make([]uint, 0, len(slice))
	for _, entry := range slice {
		if entry != value {
			list = append(list, entry)
		}
	}
	return list
}
