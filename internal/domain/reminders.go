package domain

import (
	"math/rand"
	"sync"
	"time"
)

// ReminderCategory groups phrases by the time of day they fit.
type ReminderCategory string

const (
	ReminderAnytime ReminderCategory = "anytime"
	ReminderLunch   ReminderCategory = "lunch"
	ReminderEvening ReminderCategory = "evening"
	ReminderLate    ReminderCategory = "late"
)

// ReminderCategories lists every category; selection is uniform over it.
var ReminderCategories = []ReminderCategory{
	ReminderAnytime, ReminderLunch, ReminderEvening, ReminderLate,
}

// ReminderPhrases is the static phrase table.
var ReminderPhrases = map[ReminderCategory][]string{
	ReminderAnytime: {
		"Rumor has it today is a perfect day to work on the challenge. Shall we check?",
		"Checkmarks won't tick themselves! 💪",
		"Just a reminder: you are capable of more than you think.",
		"Don't forget your triple crown! (Sport, study, work).",
		"Small steps every day lead to big results. How are your steps today?",
	},
	ReminderLunch: {
		"The day is in full swing! Great moment for some sport or to plan an evening study session.",
		"Half the day is gone. Let's see how your challenge is going?",
		"Lunch break is the perfect time to do one thing from the list. Sport? Or a couple of pages of study?",
		"Don't wait for the evening! Speed up now so you're free tonight.",
		"Morning routine is over, evening one hasn't started. Time to squeeze in sport or 30 minutes of study!",
	},
	ReminderEvening: {
		"Home stretch! 6 PM is time to close at least one item.",
		"Evening is your time to shine! Sport, study, work: what's next?",
		"Can dinner wait? First, a small win in the challenge!",
		"Your challenge doesn't know yet that you're planning to drop it. Let's fix that?",
		"Perfect time for sport to shake off the after-work fatigue!",
	},
	ReminderLate: {
		"I look at the stats and see... emptiness. It's sad. 😢",
		"Looks like your challenge took a day off today without asking you.",
		"I believe your unfinished items turned into a superpower for tomorrow. But it'd be better if they were just done today.",
		"Hey, what are those three ghost tasks in your day? 👻",
		"Reminder: tomorrow you'll regret not starting today. But it's not midnight yet! Miracles happen!",
		"Your inner Duolingo advisor is furious! It's staring pointedly at the clock. ⏰",
	},
}

// Reminder is one picked phrase with its category.
type Reminder struct {
	Category ReminderCategory
	Phrase   string
}

// ReminderPicker draws random phrases. It is safe for concurrent use.
type ReminderPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewReminderPicker returns a picker seeded from the clock when rnd is nil.
func NewReminderPicker(rnd *rand.Rand) *ReminderPicker {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ReminderPicker{rnd: rnd}
}

// Pick selects a category uniformly, then a phrase uniformly within it.
func (p *ReminderPicker) Pick() Reminder {
	p.mu.Lock()
	defer p.mu.Unlock()

	cat := ReminderCategories[p.rnd.Intn(len(ReminderCategories))]
	pool := ReminderPhrases[cat]
	return Reminder{Category: cat, Phrase: pool[p.rnd.Intn(len(pool))]}
}
