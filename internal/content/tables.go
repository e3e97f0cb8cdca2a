package content

const (
	englishGreeting = "Welcome to Krishi Sakhi! How can I help you with your farming today?"
	hindiGreeting   = "कृषि सखी में आपका स्वागत है! आज मैं आपकी खेती में कैसे मदद कर सकता हूं?"

	englishDefault = "I'm here to help with your farming questions. Could you please be more specific?"
	hindiDefault   = "मैं आपके कृषि प्रश्नों में मदद करने के लिए यहां हूं। कृपया अधिक विशिष्ट हों?"
)

// Both tables are keyed by the same English words; order decides ties.
var englishKeywords = [][2]string{
	{"pest", "For pest control, I recommend these organic solutions:\n1. Neem oil spray\n2. Companion planting\n3. Natural predators like ladybugs\n4. Organic pest traps"},
	{"water", "For optimal water management:\n1. Use drip irrigation\n2. Water early morning or evening\n3. Mulch to retain moisture\n4. Monitor soil moisture regularly"},
	{"soil", "To improve soil health:\n1. Add organic compost\n2. Practice crop rotation\n3. Use green manure\n4. Maintain proper pH levels"},
	{"crop", "For better crop yield:\n1. Choose season-appropriate crops\n2. Maintain proper spacing\n3. Regular weeding\n4. Balanced nutrition"},
	{"organic", "Organic farming best practices:\n1. Use natural fertilizers\n2. Practice crop rotation\n3. Implement biological pest control\n4. Maintain soil health naturally"},
}

var hindiKeywords = [][2]string{
	{"pest", "कीट नियंत्रण के लिए, मैं इन जैविक समाधानों की सलाह देता हूं:\n1. नीम तेल स्प्रे\n2. सहयोगी खेती\n3. लेडीबग जैसे प्राकृतिक शिकारी\n4. जैविक कीट जाल"},
	{"water", "पानी के उचित प्रबंधन के लिए:\n1. ड्रिप सिंचाई का उपयोग करें\n2. सुबह या शाम को पानी दें\n3. नमी बनाए रखने के लिए मल्च का उपयोग करें\n4. मिट्टी की नमी की नियमित जांच करें"},
	{"soil", "मिट्टी की गुणवत्ता सुधारने के लिए:\n1. जैविक खाद डालें\n2. फसल चक्र अपनाएं\n3. हरी खाद का उपयोग करें\n4. उचित पीएच स्तर बनाए रखें"},
	{"crop", "बेहतर फसल उपज के लिए:\n1. मौसम के अनुसार फसल चुनें\n2. उचित दूरी बनाए रखें\n3. नियमित निराई करें\n4. संतुलित पोषण"},
	{"organic", "जैविक खेती के सर्वोत्तम तरीके:\n1. प्राकृतिक उर्वरक का उपयोग करें\n2. फसल चक्र अपनाएं\n3. जैविक कीट नियंत्रण\n4. मिट्टी की प्राकृतिक स्वास्थ्य बनाए रखें"},
}

var englishLabels = Labels{
	Title:            "Krishi Sakhi",
	ChatHeading:      "Ask your farming questions",
	InputPlaceholder: "Type your question...",
	SuppliersHeading: "Organic Pesticide Suppliers",
	Temperature:      "Temperature",
	Humidity:         "Humidity",
	Rainfall:         "Rainfall",
	Loading:          "Loading...",
}

// Weather card labels stay in English in both languages.
var hindiLabels = Labels{
	Title:            "कृषि सखी",
	ChatHeading:      "अपने कृषि संबंधी प्रश्न पूछें",
	InputPlaceholder: "अपना प्रश्न लिखें...",
	SuppliersHeading: "जैविक कीटनाशक आपूर्तिकर्ता",
	Temperature:      "Temperature",
	Humidity:         "Humidity",
	Rainfall:         "Rainfall",
	Loading:          "Loading...",
}
