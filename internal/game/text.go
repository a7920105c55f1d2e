package game

import (
	"fmt"
	"strings"

	"github.com/karlos-perez/hundred-to-one/internal/models"
)

// Outbound message texts. The transport sends them verbatim; keyboards
// are attached separately via the Keyboard value.
const (
	msgInvite = "Hi! I host the game\n1️⃣0️⃣0️⃣ to 1️⃣\n" +
		"Commands I know:\n" +
		" /game — invite the chat to play\n" +
		" /stop — end the current game\n" +
		" /rules — how the game works\n" +
		"To start a game, press 👇"

	msgRules = "📖 Rules.\n" +
		"A question is announced with six hidden answers, each worth " +
		"points. The first player to press \"Answer\" gets to type a " +
		"guess. A correct guess scores its points and the player keeps " +
		"answering; after three wrong guesses the player is out for the " +
		"rest of the game.\n" +
		"The game ends when all six answers are found, when somebody " +
		"presses \"Stop\" or sends /stop, or when all players are out.\n" +
		"To start a game, press 👇"

	msgBegin = "L E T ' S   G O !!!\nThe question:"

	msgHiddenSlot = "✖✖✖✖✖✖"

	msgAlreadyRunning = "A game is already running in this chat"
	msgCannotAnswer   = "You cannot answer in this game anymore"
	msgSlotTaken      = "Somebody is already answering"
	msgNoSession      = "No game is running here. Send /game to start one"
	msgFailure        = "😵 Something went wrong, the game had to be closed"
)

func formatRespondent(fullName string) string {
	return fmt.Sprintf("Answering now:\n%s", fullName)
}

func formatCorrect(fullName string, score int) string {
	return fmt.Sprintf("That is a correct answer ✅\n%s +%d", fullName, score)
}

func formatIncorrect(attempts int) string {
	return fmt.Sprintf("No such answer ❌\nAttempts left: %d\n\nTry again...", attempts)
}

func formatLose(fullName string, score int) string {
	return fmt.Sprintf("No such answer ❌\n%s\nis out of the game\nPoints earned: %d", fullName, score)
}

// formatBoard renders the question with its six-slot reveal buffer.
func formatBoard(s *Session) string {
	lines := make([]string, 0, models.AnswersPerQuestion+1)
	lines = append(lines, s.Title)
	for _, slot := range s.Board {
		switch {
		case !slot.Revealed:
			lines = append(lines, msgHiddenSlot)
		case slot.Missed:
			lines = append(lines, fmt.Sprintf("❌ %s — %d", slot.Title, slot.Score))
		default:
			lines = append(lines, fmt.Sprintf("✅ %s — %d", slot.Title, slot.Score))
		}
	}
	return strings.Join(lines, "\n")
}

// formatEnd renders the game-over summary with the scoreboard.
func formatEnd(status string, stoppedBy string, scoreboard []models.Participant) string {
	var b strings.Builder

	switch status {
	case models.GameStatusStopped:
		fmt.Fprintf(&b, "Game over\n%s stopped the game\n\n", stoppedBy)
	case models.GameStatusFinished:
		b.WriteString("Game over\nCongratulations, the board is complete 🎉\n\n")
	default:
		b.WriteString(msgFailure)
		return b.String()
	}

	switch {
	case len(scoreboard) == 1:
		fmt.Fprintf(&b, "Winner 🏆 and the only player:\n🥇 %s — %d",
			scoreboard[0].User.FullName, scoreboard[0].Score)
	case len(scoreboard) > 1:
		fmt.Fprintf(&b, "Winner 🏆:\n🥇 %s — %d\n\nThe rest:\n",
			scoreboard[0].User.FullName, scoreboard[0].Score)
		rest := make([]string, 0, len(scoreboard)-1)
		for _, p := range scoreboard[1:] {
			rest = append(rest, fmt.Sprintf("%s — %d", p.User.FullName, p.Score))
		}
		b.WriteString(strings.Join(rest, "\n"))
	}

	return b.String()
}
