package quest

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/myrjola/questapp/internal/errors"
)

// narrator turns an assembled quest into a short motivational coach message.
// The message is presentation only: quests are complete and valid without it.
type narrator struct {
	client openai.Client
}

func newNarrator(apiKey string) *narrator {
	return &narrator{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

// coachMessage asks the model for a two-sentence summary of the day's plan.
func (n *narrator) coachMessage(ctx context.Context, q Quest) (string, error) {
	chat, err := n.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a concise fitness coach. Reply with at most two sentences, no markdown."),
			openai.UserMessage(questSummaryPrompt(q)),
		},
		Model: openai.ChatModelGPT4o,
	})
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}

// questSummaryPrompt renders the quest facts the coach message should touch.
func questSummaryPrompt(q Quest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today's plan: %d kcal across %d meals", q.Targets.Calories, len(q.Slots))
	if q.Workout != nil {
		fmt.Fprintf(&b, ", %s (%d exercises, %d sets of %d reps)",
			q.Workout.Name, q.Workout.ExerciseCount, q.Workout.SetsPerExercise, q.Workout.RepsPerSet)
	} else {
		b.WriteString(", rest day")
	}
	fmt.Fprintf(&b, ", %.1f hours of sleep.", q.SleepHours)
	fmt.Fprintf(&b, " Macros: %dg protein, %dg fat, %dg carbs.",
		q.Targets.Macros.Protein, q.Targets.Macros.Fat, q.Targets.Macros.Carb)
	b.WriteString(" Encourage the user to follow it.")
	return b.String()
}
