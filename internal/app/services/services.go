package services

// Services defined in this package:
// - AuthService: registration, login and token lifecycle
// - ApprovalService: the student approval gate
// - UserService: profile reads and updates
// - CompanyService: company catalog
// - JobService: job postings and their cascade on delete
// - ApplicationService: the application lifecycle state machine
// - AttachmentService: artifact linking for photos, resumes and offer letters
// - NoticeService: role-scoped notice distribution
// - InternshipService: student-owned internship records
