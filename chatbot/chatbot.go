// Package chatbot answers free-text questions against a fixed FAQ list.
// Matching is a pure function: no state across turns, no learning.
package chatbot

import "strings"

// FAQ pairs an answer with the keywords that select it.
type FAQ struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

// FallbackAnswer is returned when no FAQ keyword matches the input.
const FallbackAnswer = "I'm not sure about that specific question. For personalized advice, please post your question in our Q&A Forum where healthcare professionals can provide detailed answers. You can also browse our Resources section for more information."

var faqs = []FAQ{
	{
		Question: "What types of contraception are available?",
		Answer:   "There are many types of contraception available including condoms, birth control pills, IUDs, implants, patches, and emergency contraception. Each has different effectiveness rates, side effects, and methods of use. Condoms are the only method that also protects against STIs. For personalized advice, please consult with a healthcare professional.",
		Keywords: []string{"contraception", "birth control", "condom", "pill", "iud"},
	},
	{
		Question: "How can I prevent STIs?",
		Answer:   "STIs (Sexually Transmitted Infections) can be prevented through: 1) Using condoms consistently and correctly, 2) Getting regular STI testing, 3) Open communication with partners about sexual health, 4) Limiting number of sexual partners, 5) Getting vaccinated (HPV, Hepatitis B). Common STIs include chlamydia, gonorrhea, herpes, HPV, and HIV.",
		Keywords: []string{"sti", "std", "infection", "disease", "prevention"},
	},
	{
		Question: "How often should I get tested for STIs?",
		Answer:   "Regular STI testing is important for sexually active individuals. The CDC recommends at least annual testing for sexually active people. If you have multiple partners or engage in high-risk behavior, testing every 3-6 months is recommended. Tests can be done at healthcare clinics, student health centers, or through at-home testing kits.",
		Keywords: []string{"testing", "test", "screening", "check"},
	},
	{
		Question: "What should I do if I think I'm pregnant?",
		Answer:   "If you think you might be pregnant: 1) Take a home pregnancy test (most accurate 1 week after missed period), 2) Schedule an appointment with a healthcare provider, 3) Discuss your options and next steps. Healthcare providers can provide counseling, prenatal care, or information about all available options.",
		Keywords: []string{"pregnancy", "pregnant", "test"},
	},
	{
		Question: "What is consent?",
		Answer:   "Consent is freely given, enthusiastic agreement to participate in sexual activity. Key points: 1) It must be clear and ongoing, 2) It can be withdrawn at any time, 3) It cannot be given if someone is intoxicated, unconscious, or coerced, 4) Silence or lack of resistance is NOT consent, 5) Past consent doesn't mean future consent.",
		Keywords: []string{"consent", "permission", "agreement"},
	},
	{
		Question: "Where can I find more resources?",
		Answer:   "You can find additional resources in our Resources section, including links to local health services, educational materials, support groups, and counseling services. You can also post questions anonymously in our Q&A Forum where healthcare professionals provide personalized responses.",
		Keywords: []string{"resources", "help", "support", "services"},
	},
	{
		Question: "What are the signs of common STIs?",
		Answer:   "Common STI symptoms include unusual discharge, burning during urination, sores or bumps, itching, and pain during sex. However, many STIs have NO symptoms, which is why regular testing is crucial. If you notice any symptoms or had unprotected sex, get tested immediately.",
		Keywords: []string{"symptoms", "signs", "discharge", "burning"},
	},
	{
		Question: "Is emergency contraception safe?",
		Answer:   "Yes, emergency contraception (like Plan B) is safe and effective when taken within 72 hours of unprotected sex. The sooner you take it, the more effective it is. It's available over-the-counter at pharmacies. It's not the same as the abortion pill and won't harm an existing pregnancy.",
		Keywords: []string{"emergency", "plan b", "morning after"},
	},
}

// FAQs returns the ordered FAQ list for display.
func FAQs() []FAQ {
	return faqs
}

// Answer lower-cases the input and returns the first FAQ whose keywords have
// a substring match, or (FallbackAnswer, false) when none do. Entries are
// scanned in order, so earlier FAQs win ties.
func Answer(input string) (string, bool) {
	lower := strings.ToLower(input)
	for _, faq := range faqs {
		for _, kw := range faq.Keywords {
			if strings.Contains(lower, kw) {
				return faq.Answer, true
			}
		}
	}
	return FallbackAnswer, false
}
