package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/jobtrack/internal/common"
	sc "github.com/dmitrijs2005/jobtrack/internal/server/config"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Export is the location of an uploaded history snapshot.
type Export struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

type exportDocument struct {
	ExportedAt time.Time        `json:"exported_at"`
	Activities []exportActivity `json:"activities"`
	Goals      []exportGoal     `json:"goals"`
}

type exportActivity struct {
	Date               string  `json:"date"`
	ApplicationsSent   int     `json:"applications_sent"`
	NetworkingContacts int     `json:"networking_contacts"`
	SkillPracticeHours float64 `json:"skill_practice_hours"`
	ResearchCompanies  int     `json:"research_companies"`
}

type exportGoal struct {
	Type               string    `json:"type"`
	ApplicationsTarget int       `json:"applications_target"`
	NetworkingTarget   int       `json:"networking_target"`
	SkillHoursTarget   float64   `json:"skill_hours_target"`
	ResearchTarget     int       `json:"research_target"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
}

// ExportService uploads a user's full history to object storage and hands
// back a time-limited download link.
type ExportService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewExportService(m repomanager.RepositoryManager, cfg *sc.Config) *ExportService {
	return &ExportService{repomanager: m, config: cfg}
}

// GetExportKey builds the object key for a new export of userID.
func GetExportKey(userID string, now time.Time) string {
	return fmt.Sprintf("exports/%s/%s/%v.json", userID, now.Format(common.DateLayout), uuid.New())
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func (s *ExportService) buildDocument(ctx context.Context, userID string, now time.Time) ([]byte, error) {
	conn := s.repomanager.Conn()

	list, err := s.repomanager.Activities(conn).ListByUserSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("error listing activities: %w", err)
	}

	doc := exportDocument{
		ExportedAt: now.UTC(),
		Activities: make([]exportActivity, 0, len(list)),
		Goals:      make([]exportGoal, 0),
	}
	for _, a := range list {
		doc.Activities = append(doc.Activities, exportActivity{
			Date:               a.Day.Format(common.DateLayout),
			ApplicationsSent:   a.ApplicationsSent,
			NetworkingContacts: a.NetworkingContacts,
			SkillPracticeHours: a.SkillPracticeHours,
			ResearchCompanies:  a.ResearchCompanies,
		})
	}

	goalRepo := s.repomanager.Goals(conn)
	for _, c := range []models.Cadence{models.CadenceDaily, models.CadenceWeekly} {
		history, err := goalRepo.ListHistory(ctx, userID, c)
		if err != nil {
			return nil, fmt.Errorf("error listing goals: %w", err)
		}
		for _, g := range history {
			doc.Goals = append(doc.Goals, exportGoal{
				Type:               string(g.Cadence),
				ApplicationsTarget: g.Targets.Applications,
				NetworkingTarget:   g.Targets.Networking,
				SkillHoursTarget:   g.Targets.SkillHours,
				ResearchTarget:     g.Targets.Research,
				Active:             g.Active,
				CreatedAt:          g.CreatedAt,
			})
		}
	}

	return json.Marshal(doc)
}

// Export uploads the activity and goal history of userID as one JSON object
// and returns a presigned GET URL for it.
func (s *ExportService) Export(ctx context.Context, userID string) (*Export, error) {
	now := time.Now()

	body, err := s.buildDocument(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := GetExportKey(userID, now)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	ttl := s.config.ExportURLValidityDuration
	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	return &Export{Key: key, URL: req.URL, ExpiresAt: now.Add(ttl)}, nil
}
