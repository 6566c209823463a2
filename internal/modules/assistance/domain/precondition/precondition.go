// Package precondition decides whether an assistance type's feature
// requirements are met by a course's enabled feature set.
package precondition

// Fulfilled reports whether every required feature key is enabled. A type
// without requirements is always fulfilled.
func Fulfilled(requiredFeatures []string, enabledFeatureKeys map[string]struct{}) bool {
	for _, key := range requiredFeatures {
		if _, ok := enabledFeatureKeys[key]; !ok {
			return false
		}
	}
	return true
}
