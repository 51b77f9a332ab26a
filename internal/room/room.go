// Package room derives conversation identifiers for pairs of users.
package room

// ID returns the canonical room id for the conversation between two users.
// The smaller username sorts first, so ID(a, b) == ID(b, a).
func ID(userA, userB string) string {
	if userA < userB {
		return userA + "_" + userB
	}
	return userB + "_" + userA
}
