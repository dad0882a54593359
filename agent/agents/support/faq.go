package support

// faqEntry pairs the keyword surface of a topic with its canned answer.
// Matching is normalized token overlap between the utterance and the
// keyword surface.
type faqEntry struct {
	Topic    string
	Keywords string
	Answer   string
}

func defaultFAQ() []faqEntry {
	return []faqEntry{
		{
			Topic:    "payment_methods",
			Keywords: "payment payments pay card cards credit paypal apple google method methods",
			Answer:   "We accept all major credit cards (Visa, MasterCard, American Express), PayPal, Apple Pay, and Google Pay.",
		},
		{
			Topic:    "shipping_time",
			Keywords: "shipping ship delivery deliver time long days express standard fast",
			Answer: "Standard shipping takes 5-7 business days. Express shipping takes 2-3 business days. " +
				"Same-day delivery is available in select areas.",
		},
		{
			Topic:    "return_policy",
			Keywords: "return returns refund refunds policy period exchange money back",
			Answer: "You can return most items within 30 days of delivery for a full refund. " +
				"Items must be unused and in original packaging. Refunds are processed to the original " +
				"payment method within 5-7 business days after we receive the return. Final sale and " +
				"personalized items cannot be returned.",
		},
		{
			Topic:    "track_order",
			Keywords: "track tracking number email history find locate",
			Answer: "You can track your order by logging into your account and viewing your order history, " +
				"or by using the tracking number sent to your email.",
		},
		{
			Topic:    "cancel_order",
			Keywords: "cancel cancellation cancelled stop placed",
			Answer: "Orders can be cancelled within 1 hour of placement. After that, you may need to wait " +
				"for delivery and then initiate a return.",
		},
		{
			Topic:    "warranty",
			Keywords: "warranty warranties guarantee broken defect defective repair manufacturer",
			Answer: "Most electronics come with a 1-year manufacturer warranty. Extended warranty options " +
				"are available at checkout.",
		},
		{
			Topic:    "gift_wrapping",
			Keywords: "gift wrap wrapping present wrapped",
			Answer:   "Gift wrapping is available for $5.99 per item. You can select this option during checkout.",
		},
		{
			Topic:    "international_shipping",
			Keywords: "international abroad overseas country countries worldwide customs",
			Answer: "We ship to over 50 countries worldwide. International shipping rates and delivery " +
				"times vary by destination.",
		},
	}
}
