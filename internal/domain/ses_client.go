package domain

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ses"
)

//go:generate mockgen -destination mocks/mock_ses_client.go -package mocks github.com/Notifuse/newsletter/internal/domain SESClient

// SESClient is the part of the AWS SES API used to send email
type SESClient interface {
	SendEmailWithContext(ctx aws.Context, input *ses.SendEmailInput, opts ...request.Option) (*ses.SendEmailOutput, error)
}
