package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"

	"backend/models"
)

// PushService sends the over-budget notification through SNS. It is
// optional: without a platform ARN configured, NewPushService returns an
// error and the caller simply runs without push.
type PushService struct {
	db          *gorm.DB
	sns         *awssns.Client
	platformArn string
}

func NewPushService(ctx context.Context, db *gorm.DB, region, platformArn string) (*PushService, error) {
	if platformArn == "" {
		return nil, errors.New("SNS_PLATFORM_ARN not set")
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &PushService{db: db, sns: awssns.NewFromConfig(cfg), platformArn: platformArn}, nil
}

// RegisterDevice creates (or refreshes) the SNS platform endpoint for
// the device's push token. One device, one endpoint row.
func (p *PushService) RegisterDevice(ctx context.Context, platform, token string) (*models.PushEndpoint, error) {
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return nil, errors.New("unknown platform")
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, fmt.Errorf("create platform endpoint: %w", err)
	}

	h := sha256.Sum256([]byte(token))
	ep := &models.PushEndpoint{
		ID:          1,
		Platform:    platform,
		TokenHash:   hex.EncodeToString(h[:]),
		EndpointARN: aws.ToString(out.EndpointArn),
		UpdatedAt:   time.Now(),
	}
	if err := p.db.WithContext(ctx).Where("id = ?", ep.ID).Assign(*ep).FirstOrCreate(ep).Error; err != nil {
		return nil, fmt.Errorf("store push endpoint: %w", err)
	}
	return ep, nil
}

// NotifyOverBudget pushes once a commit tips the day past the budget.
// Best effort: failures are logged, never surfaced to the save flow.
func (p *PushService) NotifyOverBudget(ctx context.Context, summary *DaySummary) {
	var ep models.PushEndpoint
	if err := p.db.WithContext(ctx).First(&ep, 1).Error; err != nil {
		return // no device registered
	}

	body := fmt.Sprintf("You're %d kcal over today's budget of %d.",
		summary.ConsumedCalories-summary.TDEE, summary.TDEE)
	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": "Calorie budget exceeded",
				"body":  body,
			},
			"data": map[string]string{"date": summary.Date},
		},
	}

	raw, _ := json.Marshal(msg)
	if _, err := p.sns.Publish(ctx, &awssns.PublishInput{
		MessageStructure: aws.String("json"),
		Message:          aws.String(string(raw)),
		TargetArn:        aws.String(ep.EndpointARN),
	}); err != nil {
		log.Printf("push notify failed: %v", err)
	}
}
