package service

import "fmt"

// Messages holds every user-visible string for one language. Format verbs
// are documented next to each field that takes them.
type Messages struct {
	Title         string
	Description   string
	StatusHeading string
	Free          string
	Taken         string // %s: occupant mention

	Booked         string // %s: mention, %s: vehicle
	Released       string // %s: mention, %s: vehicle
	AlreadyHolding string // %s: vehicle already held
	AlreadyTaken   string // %s: vehicle
	InvalidVehicle string
	Failure        string
	ResetDone      string
	NotAllowed     string
	ScheduledReset string

	RosterCommand            string
	RosterCommandDescription string
	ResetCommand             string
	ResetCommandDescription  string
}

var catalog = map[string]Messages{
	"uk": {
		Title:         "🚛 FASTIQ Logistics — Система бронювання авто",
		Description:   "Натисни кнопку, щоб забронювати або звільнити авто.",
		StatusHeading: "Статус автопарку:",
		Free:          "🟢 **Вільна**",
		Taken:         "🔴 **Зайнята** (%s)",

		Booked:         "✅ %s забронював **%s**",
		Released:       "❎ %s звільнив **%s**",
		AlreadyHolding: "🚫 Ти вже забронював **%s**. Спочатку звільни її.",
		AlreadyTaken:   "🚫 **%s** вже заброньована іншим користувачем!",
		InvalidVehicle: "⚠️ Цю фуру не знайдено. Відкрий меню бронювання ще раз.",
		Failure:        "⚠️ Не вдалося зберегти зміни. Спробуй пізніше.",
		ResetDone:      "🔄 Усі бронювання скинуто, авто вільні.",
		NotAllowed:     "🚫 Скинути бронювання може лише адміністратор.",
		ScheduledReset: "🕔 Автоматичне очищення: усі авто тепер вільні!",

		RosterCommand:            "бронь",
		RosterCommandDescription: "Відкрити меню бронювання авто",
		ResetCommand:             "reset",
		ResetCommandDescription:  "Звільнити всі авто",
	},
	"en": {
		Title:         "🚛 FASTIQ Logistics — Truck booking",
		Description:   "Press a button to book or release a truck.",
		StatusHeading: "Fleet status:",
		Free:          "🟢 **Free**",
		Taken:         "🔴 **Taken** (%s)",

		Booked:         "✅ %s booked **%s**",
		Released:       "❎ %s released **%s**",
		AlreadyHolding: "🚫 You already booked **%s**. Release it first.",
		AlreadyTaken:   "🚫 **%s** is already booked by someone else!",
		InvalidVehicle: "⚠️ That truck was not found. Open the booking menu again.",
		Failure:        "⚠️ Could not save the change. Try again later.",
		ResetDone:      "🔄 All bookings cleared, every truck is free.",
		NotAllowed:     "🚫 Only an administrator can reset bookings.",
		ScheduledReset: "🕔 Automatic reset: every truck is free again!",

		RosterCommand:            "book",
		RosterCommandDescription: "Open the truck booking menu",
		ResetCommand:             "reset",
		ResetCommandDescription:  "Release every truck",
	},
}

// MessagesFor returns the catalog for lang ("uk" or "en").
func MessagesFor(lang string) (Messages, error) {
	msgs, ok := catalog[lang]
	if !ok {
		return Messages{}, fmt.Errorf("unsupported language %q", lang)
	}
	return msgs, nil
}
