package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ssmAPI is the subset of the SSM client used to load parameters.
type ssmAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSMParameters overlays every parameter under SSM_PARAMETER_PATH onto
// config, keyed by the last path element (/portfolio/prod/RESEND_API_KEY
// becomes RESEND_API_KEY). Values already set in the environment win.
// Without SSM_PARAMETER_PATH this is a no-op.
func LoadSSMParameters(ctx context.Context, config map[string]string) error {
	parameterPath := GetString(config, "SSM_PARAMETER_PATH", "")
	if parameterPath == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	return loadSSMParameters(ctx, ssm.NewFromConfig(awsCfg), parameterPath, config)
}

func loadSSMParameters(ctx context.Context, client ssmAPI, parameterPath string, config map[string]string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("reading SSM parameters under %s: %w", parameterPath, err)
		}

		for _, p := range page.Parameters {
			key := path.Base(aws.ToString(p.Name))
			if key == "" || key == "/" || key == "." {
				continue
			}
			if existing, ok := config[key]; ok && strings.TrimSpace(existing) != "" {
				continue
			}
			config[key] = aws.ToString(p.Value)
			loaded++
		}
	}

	log.Info().Str("path", parameterPath).Int("count", loaded).Msg("Loaded SSM parameters")
	return nil
}
