package assistant

import "strings"

const Greeting = "Hello! How can I help you today?"

const DefaultReply = "I can help you with information about our farmers, products, pricing, delivery, and NGO support. What specific information are you looking for?"

type rule struct {
	keywords []string
	reply    string
}

// 上から順に評価し、最初に一致したものを返す
var rules = []rule{
	{
		keywords: []string{"price", "cost"},
		reply:    "You can check current prices on our marketplace. Prices vary by location and season. Would you like me to help you find specific products?",
	},
	{
		keywords: []string{"farmer", "farm"},
		reply:    "We connect you directly with local farmers. You can browse farmer profiles, adopt a farm, or purchase fresh produce. What would you like to know about our farmers?",
	},
	{
		keywords: []string{"organic", "quality"},
		reply:    "All our farmers follow sustainable practices. We ensure quality through regular inspections and direct farmer partnerships. Each product has quality ratings from previous buyers.",
	},
	{
		keywords: []string{"delivery", "shipping"},
		reply:    "We offer fast delivery from local farms to your doorstep. Delivery times vary by location but typically range from 1-3 days for fresh produce.",
	},
	{
		keywords: []string{"ngo", "support"},
		reply:    "Our NGO support section helps farmers connect with organizations that provide training, funding, and resources. You can apply through our Quick Apply feature or contact specific NGOs directly.",
	},
}

// Respond は小文字化した入力に対する部分一致で応答を選ぶ。
func Respond(text string) string {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	return DefaultReply
}
