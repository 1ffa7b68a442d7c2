package leaderboard

// Peers are sample classmates shown next to the local learner so the board
// is never a list of one.
var Peers = []Entry{
	{Name: "Priya", XP: 2450, Streak: 12, Quizzes: 38, Solved: 156},
	{Name: "Mateo", XP: 2180, Streak: 8, Quizzes: 31, Solved: 142},
	{Name: "Aiko", XP: 1920, Streak: 15, Quizzes: 29, Solved: 128},
	{Name: "Lena", XP: 1650, Streak: 5, Quizzes: 24, Solved: 98},
	{Name: "Kwame", XP: 1420, Streak: 3, Quizzes: 20, Solved: 87},
}

// Board ranks the learner's entry together with Peers.
func Board(self Entry) []Entry {
	all := make([]Entry, 0, len(Peers)+1)
	all = append(all, Peers...)
	all = append(all, self)
	return Rank(all)
}
