package http

import (
	"github.com/notekeep-api/internal/infrastructure/dynamo"
	"github.com/notekeep-api/internal/infrastructure/github"
	"github.com/notekeep-api/internal/infrastructure/google"
	jwtinfra "github.com/notekeep-api/internal/infrastructure/jwt"
	s3infra "github.com/notekeep-api/internal/infrastructure/s3"
	"github.com/notekeep-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       *dynamo.UserRepo
	TokenRepo      *dynamo.VerificationTokenRepo
	NoteRepo       *dynamo.NoteRepo
	CategoryRepo   *dynamo.CategoryRepo
	TagRepo        *dynamo.TagRepo
	TaskRepo       *dynamo.TaskRepo
	ProjectRepo    *dynamo.ProjectRepo
	TemplateRepo   *dynamo.TemplateRepo
	JournalRepo    *dynamo.JournalRepo
	ArticleRepo    *dynamo.ArticleRepo
	AttachmentRepo *dynamo.AttachmentRepo

	S3Store        *s3infra.Store
	Mailer         smtp.Mailer
	GoogleVerifier *google.Verifier
	GitHubVerifier *github.Verifier
	JWTProvider    *jwtinfra.Provider
}
