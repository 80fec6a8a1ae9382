package feedback

import "golang.org/x/text/language"

// translations holds every message per locale. Medication and condition
// names fall back to their catalog key, so English only lists what differs.
var translations = map[language.Tag]map[string]string{
	language.English: {
		"feedback.correct":   "Correct! %[1]s is used to treat %[2]s.",
		"feedback.wrong":     "Not quite. %[1]s is not used for %[2]s.",
		"feedback.occupied":  "This slot is already occupied!",
		"feedback.removed":   "Pill removed. -10 points",
		"feedback.perfect":   "Perfect! You matched every medication correctly!",
		"feedback.completed": "Game complete! You got %[1]d correct placements.",

		"howto.title":   "How to Play",
		"howto.scoring": "Scoring System",
		"howto.correct": "Correct placement: +%[1]d points",
		"howto.wrong":   "Wrong placement: -%[1]d points",
		"howto.remove":  "Removing a pill: -%[1]d points",
		"howto.steps":   "Instructions",
		"howto.step1":   "Drag a medication from the available pills.",
		"howto.step2":   "Drop it into a slot of the blister pack for the condition it treats.",
		"howto.step3":   "Click a placed pill to take it back out.",
		"howto.step4":   "Fill every slot to finish the game.",

		"conditions.Hypertension": "Hypertension",
		"conditions.Diabetes":     "Diabetes",
		"conditions.Depression":   "Depression",
		"conditions.Asthma":       "Asthma",
	},
	language.Arabic: {
		"feedback.correct":   "صحيح! يُستخدم %[1]s لعلاج %[2]s.",
		"feedback.wrong":     "ليس تمامًا. %[1]s لا يُستخدم لعلاج %[2]s.",
		"feedback.occupied":  "هذه الخانة مشغولة بالفعل!",
		"feedback.removed":   "تمت إزالة الحبة. -10 نقاط",
		"feedback.perfect":   "ممتاز! لقد طابقت جميع الأدوية بشكل صحيح!",
		"feedback.completed": "اكتملت اللعبة! حصلت على %[1]d مواضع صحيحة.",

		"howto.title":   "طريقة اللعب",
		"howto.scoring": "نظام النقاط",
		"howto.correct": "وضع صحيح: +%[1]d نقطة",
		"howto.wrong":   "وضع خاطئ: -%[1]d نقطة",
		"howto.remove":  "إزالة حبة: -%[1]d نقاط",
		"howto.steps":   "التعليمات",
		"howto.step1":   "اسحب دواءً من الحبوب المتاحة.",
		"howto.step2":   "أفلته في خانة شريط الحالة التي يعالجها.",
		"howto.step3":   "انقر على الحبة الموضوعة لإخراجها.",
		"howto.step4":   "املأ جميع الخانات لإنهاء اللعبة.",

		"conditions.Hypertension": "ارتفاع ضغط الدم",
		"conditions.Diabetes":     "السكري",
		"conditions.Depression":   "الاكتئاب",
		"conditions.Asthma":       "الربو",

		"meds.Lisinopril":    "ليسينوبريل",
		"meds.Amlodipine":    "أملوديبين",
		"meds.Metformin":     "ميتفورمين",
		"meds.Insulin":       "الإنسولين",
		"meds.Sertraline":    "سيرترالين",
		"meds.Fluoxetine":    "فلوكستين",
		"meds.Albuterol":     "ألبوتيرول",
		"meds.Budesonide":    "بوديسونيد",
		"meds.Ibuprofen":     "إيبوبروفين",
		"meds.Acetaminophen": "أسيتامينوفين",
	},
}
