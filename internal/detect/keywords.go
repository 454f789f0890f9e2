package detect

// Default signal lists. All entries are lower-case; matching is substring
// based, so phrase variants ("verify", "verify your account") stack.

var phishingKeywords = []string{
	"verify your account",
	"your account",
	"verify",
	"account",
	"click here",
	"suspended",
	"unusual activity",
	"security alert",
	"update your information",
	"confirm your",
	"login",
	"password",
	"urgent",
	"re-activate",
}

var urgencyKeywords = []string{
	"urgent",
	"immediately",
	"act now",
	"asap",
	"expires",
	"right away",
	"within 24 hours",
}

var suspiciousDomains = []string{
	"bit.ly",
	"tinyurl.com",
	"goo.gl",
	"t.co",
	"ow.ly",
	"is.gd",
	"rb.gy",
	"rebrand.ly",
}

var malwareExtensions = []string{
	".exe",
	".scr",
	".bat",
	".cmd",
	".com",
	".pif",
	".vbs",
	".js",
	".jar",
	".msi",
	".dll",
	".ps1",
	".hta",
}

var malwareActionKeywords = []string{
	"enable macro",
	"enable macros",
	"enable content",
	"enable editing",
	"disable antivirus",
	"run the attached",
	"open the attachment",
	"extract the archive",
	"decrypt",
}

var spamKeywords = []string{
	"free",
	"winner",
	"congratulations",
	"click here",
	"limited time",
	"act now",
	"buy now",
	"cash",
	"prize",
	"no obligation",
	"risk free",
	"lottery",
	"million dollars",
	"earn money",
	"unsubscribe",
	"viagra",
}

var socialEngineeringKeywords = []string{
	"social security",
	"ssn",
	"bank account",
	"wire transfer",
	"gift card",
	"verify your identity",
	"confirm your identity",
	"do not tell",
	"keep this between us",
	"account suspended",
	"unauthorized access",
	"password reset",
}

var authorityBrands = []string{
	"microsoft",
	"apple support",
	"google security",
	"amazon",
	"paypal",
	"irs",
	"fbi",
	"bank of america",
	"netflix",
	"tech support",
	"it department",
}

var becKeywords = []string{
	"wire transfer",
	"urgent payment",
	"change of bank",
	"new account details",
	"payment request",
	"invoice attached",
	"confidential transaction",
	"gift cards",
	"are you available",
	"quick task",
	"handle this personally",
}

var executiveTitles = []string{
	"ceo",
	"cfo",
	"coo",
	"president",
	"chief executive",
	"chief financial",
	"managing director",
	"chairman",
}
