// Package services holds the business logic behind the HTTP controllers.
//
// Services defined in this package:
//   - AuthService: registration, login, token refresh and password reset
//   - UserService: profiles, CV and logo uploads, saved internships
//   - InternshipService: internship listing and company-owned CRUD
//   - ApplicationService: applying, reviewing and withdrawing
//   - RecommendationService: ranks internships for a student
//   - AdminService: account management, dashboard stats, workbook import
//   - ChatbotService: the assistant endpoint
//   - NotificationService: emails sent in response to domain events
//   - TokenCleanupService: purges expired refresh tokens and reset links
package services
