package chatbot

import "strings"

// Topic names the canned answer a fallback reply came from.
type Topic string

const (
	TopicApply      Topic = "apply"
	TopicCV         Topic = "cv"
	TopicMatching   Topic = "matching"
	TopicSupport    Topic = "support"
	TopicSignUp     Topic = "signup"
	TopicInternship Topic = "internship"
	TopicDefault    Topic = "default"
)

type cannedTopic struct {
	topic    Topic
	title    string
	keywords []string
	answer   string
}

// cannedTopics is ordered by priority: the first topic with a matching
// keyword wins, so "apply with my cv" is answered as TopicApply.
var cannedTopics = []cannedTopic{
	{
		topic:    TopicApply,
		title:    "How to apply for internships?",
		keywords: []string{"apply", "application", "how to apply"},
		answer: `To apply for internships on FutureIntern:

1. **Browse Opportunities**: Use our search feature to find internships that match your interests and skills.

2. **Create an Account**: Sign up for a free account if you haven't already.

3. **Complete Your Profile**: Upload your CV and fill out your profile to help companies learn about you.

4. **Apply**: Click "Apply Now" on any internship listing. You can track your applications in your dashboard.

5. **Wait for Response**: Companies will review your application and contact you if you're a good fit.

Need more help? Visit our Help Center or contact support!`,
	},
	{
		topic:    TopicCV,
		title:    "How to upload my CV?",
		keywords: []string{"cv", "resume", "upload"},
		answer: `To upload your CV on FutureIntern:

1. **Sign In**: Log into your FutureIntern account.

2. **Go to Dashboard**: Click on your profile or navigate to the Dashboard.

3. **Upload CV**: Look for the "Upload CV" or "Documents" section and click to upload your file.

4. **Format**: We accept PDF, DOC, and DOCX formats. Make sure your CV is up-to-date and highlights your skills and experience.

5. **Update Regularly**: Keep your CV current to increase your chances of matching with great opportunities.

Your CV helps our AI matching system connect you with relevant internships!`,
	},
	{
		topic:    TopicMatching,
		title:    "How does matching work?",
		keywords: []string{"match", "matching", "algorithm"},
		answer: `Our AI-powered matching system works like this:

1. **Profile Analysis**: We analyze your profile, skills, education, and preferences.

2. **Opportunity Matching**: Our system matches you with internships that align with your profile and career goals.

3. **Personalized Recommendations**: You'll see recommended internships on your dashboard based on your profile.

4. **Smart Filters**: Use our search filters to refine results by location, industry, duration, and more.

5. **Continuous Learning**: The more you use the platform, the better our recommendations become!

The matching system considers your skills, interests, location preferences, and career goals to find the perfect fit.`,
	},
	{
		topic:    TopicSupport,
		title:    "Contact support",
		keywords: []string{"contact", "support", "help"},
		answer: `We're here to help! You can reach our support team through:

1. **Help Center**: Visit /get-help for detailed guides and FAQs.

2. **Contact Form**: Fill out our contact form at /contact for direct assistance.

3. **Email**: Send us an email with your questions or concerns.

4. **Response Time**: We typically respond within 24-48 hours.

For urgent matters, please use the contact form and mark it as urgent. Our team is dedicated to helping you succeed!`,
	},
	{
		topic:    TopicSignUp,
		title:    "How do I sign up?",
		keywords: []string{"sign up", "signup", "register", "create account"},
		answer: `Signing up for FutureIntern is easy:

1. **Click Sign Up**: Navigate to the Sign Up page from the homepage or navigation bar.

2. **Choose Account Type**: Select whether you're a student or a company.

3. **Fill Information**: Enter your basic information (name, email, password).

4. **Verify Email**: Check your email for a verification link.

5. **Complete Profile**: Add your details, skills, and upload your CV to get started.

6. **Start Browsing**: Once your profile is set up, you can start browsing and applying for internships!

It's completely free for students!`,
	},
	{
		topic:    TopicInternship,
		title:    "What internships are available?",
		keywords: []string{"internship", "opportunity", "position"},
		answer: `FutureIntern offers a wide range of internship opportunities:

- **Various Industries**: Technology, Finance, Marketing, Design, and more
- **Remote & On-site**: Choose from remote, hybrid, or in-person internships
- **All Levels**: Opportunities for students at different stages of their education
- **Paid & Unpaid**: Both paid and unpaid internships available

Browse our listings to find opportunities that match your interests and career goals. Use filters to narrow down your search!`,
	},
}

const defaultAnswer = `I'm here to help you with questions about FutureIntern! I can assist with:

- Applying for internships
- Uploading your CV
- Understanding our matching system
- Account setup and profile management
- General platform questions

Feel free to ask me anything, or use the quick reply buttons for common questions. If you need more detailed help, please contact our support team!`

// Fallback picks a canned answer by keyword. It is a pure function.
func Fallback(message string) (Topic, string) {
	lower := strings.ToLower(message)
	for _, t := range cannedTopics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return t.topic, t.answer
			}
		}
	}
	return TopicDefault, defaultAnswer
}

// FAQ is one canned topic as exposed by the help endpoint.
type FAQ struct {
	Topic    Topic  `json:"topic"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQs lists the canned topics in priority order.
func FAQs() []FAQ {
	out := make([]FAQ, 0, len(cannedTopics))
	for _, t := range cannedTopics {
		out = append(out, FAQ{Topic: t.topic, Question: t.title, Answer: t.answer})
	}
	return out
}
