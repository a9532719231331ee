package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"gitlab.com/leetle.net/internal/adapter/crypto"
	"gitlab.com/leetle.net/internal/config"
	"gitlab.com/leetle.net/internal/domain"
)

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Mint a bearer token for local testing",
		Flags: []cli.Flag{
			envFlag,
			&cli.Int64Flag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "user id carried by the token",
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "token lifetime (default JWT_ACCESS_TOKEN_EXPIRE_MINUTES)",
			},
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "mint a refresh token instead of an access token",
			},
		},
		Action: mintToken,
	}
}

func mintToken(ctx context.Context, cmd *cli.Command) error {
	if err := loadEnv(cmd); err != nil {
		return err
	}
	jwtCfg := config.NewJwtConfig()

	payload := domain.AuthPayload{UserID: cmd.Int64("user"), Type: domain.TokenTypeAccess}
	ttl := jwtCfg.AccessTokenTTL
	if cmd.Bool("refresh") {
		payload.Type = domain.TokenTypeRefresh
		ttl = jwtCfg.RefreshTokenTTL
	}
	if d := cmd.Duration("ttl"); d > 0 {
		ttl = d
	}

	token, err := crypto.NewJWTService(jwtCfg).GenerateTokenHMAC(ctx, payload, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, token)
	return nil
}
