package commands

import (
	"context"
	"log/slog"
	"strings"

	application "brandlink/contexts/billing/subscription-service/application"
	"brandlink/contexts/billing/subscription-service/domain/entities"
	domainerrors "brandlink/contexts/billing/subscription-service/domain/errors"
	"brandlink/contexts/billing/subscription-service/ports"
)

type CreatePackageCommand struct {
	Title      entities.PackageTitle
	Duration   entities.PackageDuration
	Limit      int
	PriceCents int64
	Features   []string
}

// CreatePackageUseCase adds a tier to the admin catalog.
type CreatePackageUseCase struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreatePackageUseCase) Execute(ctx context.Context, cmd CreatePackageCommand) (entities.Package, error) {
	packageID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Package{}, err
	}
	now := uc.Clock.Now().UTC()

	pkg := entities.Package{
		PackageID:  packageID,
		Title:      cmd.Title,
		Duration:   cmd.Duration,
		Limit:      cmd.Limit,
		PriceCents: cmd.PriceCents,
		Features:   cmd.Features,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !pkg.ValidateBasics() {
		return entities.Package{}, domainerrors.ErrInvalidPackageInput
	}
	if err := uc.Repository.CreatePackage(ctx, pkg); err != nil {
		return entities.Package{}, err
	}

	application.ResolveLogger(uc.Logger).Info("package created",
		"event", "package_created",
		"module", "billing/subscription-service",
		"layer", "application",
		"package_id", pkg.PackageID,
		"title", string(pkg.Title),
	)
	return pkg, nil
}

type UpdatePackageCommand struct {
	PackageID  string
	Limit      *int
	PriceCents *int64
	Features   *[]string
}

type UpdatePackageUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc UpdatePackageUseCase) Execute(ctx context.Context, cmd UpdatePackageCommand) (entities.Package, error) {
	pkg, err := uc.Repository.GetPackage(ctx, strings.TrimSpace(cmd.PackageID))
	if err != nil {
		return entities.Package{}, err
	}

	if cmd.Limit != nil {
		pkg.Limit = *cmd.Limit
	}
	if cmd.PriceCents != nil {
		pkg.PriceCents = *cmd.PriceCents
	}
	if cmd.Features != nil {
		pkg.Features = *cmd.Features
	}
	pkg.UpdatedAt = uc.Clock.Now().UTC()

	if !pkg.ValidateBasics() {
		return entities.Package{}, domainerrors.ErrInvalidPackageInput
	}
	if err := uc.Repository.UpdatePackage(ctx, pkg); err != nil {
		return entities.Package{}, err
	}
	return pkg, nil
}
