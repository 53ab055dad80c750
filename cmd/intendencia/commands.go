package main

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Intendencia-api/internal/application/dashboard"
	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/application/ledger"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/store"
)

// cliIdentity la CLI opera con privilegios de admin sobre el store local.
var cliIdentity = entity.Identity{Username: "intendencia-cli", Role: entity.RoleAdmin}

// NewMigrateCommand aplica las migraciones embebidas.
func NewMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:    "migrate",
		Usage:   "aplicar migraciones pendientes",
		Aliases: []string{"m"},
		Action: func(ctx *cli.Context) error {
			conf := getConfig(ctx)
			log := newLogger(conf)
			st, err := store.Open(ctx.Context, *conf)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(ctx.Context); err != nil {
				return err
			}
			log.Info().Str("store", st.Driver).Msg("migraciones aplicadas")
			return nil
		},
	}
}

// NewSeedCommand carga bases, equipos y usuarios de ejemplo.
func NewSeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "cargar datos de ejemplo (idempotente)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "password",
				Usage: "password de los usuarios de ejemplo",
				Value: "password123",
			},
		},
		Action: func(ctx *cli.Context) error {
			conf := getConfig(ctx)
			log := newLogger(conf)
			st, err := store.Open(ctx.Context, *conf)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(ctx.Context); err != nil {
				return err
			}
			rep, err := seed(ctx.Context, st, ctx.String("password"))
			if err != nil {
				return err
			}
			log.Info().
				Int("bases", rep.Bases).
				Int("equipment", rep.Equipment).
				Int("users", rep.Users).
				Msg("datos de ejemplo cargados")
			return nil
		},
	}
}

// NewBalanceCommand imprime el balance por equipo de una base.
func NewBalanceCommand() *cli.Command {
	return &cli.Command{
		Name:    "balance",
		Usage:   "mostrar el balance por tipo de equipo de una base",
		Aliases: []string{"b"},
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "base",
				Usage:    "id de la base",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "fecha inicial YYYY-MM-DD",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "fecha final YYYY-MM-DD",
			},
		},
		Action: func(ctx *cli.Context) error {
			conf := getConfig(ctx)
			log := newLogger(conf)
			r, err := dto.ParseDateRange(ctx.String("start"), ctx.String("end"))
			if err != nil {
				return err
			}
			st, err := store.Open(ctx.Context, *conf)
			if err != nil {
				return err
			}
			defer st.Close()

			pol := policy.New(policy.Options{CommanderRecordsUsage: conf.Policy.CommanderRecordsUsage})
			agg := ledger.NewAggregator(st.Ledger, pol, nil, log.Component("ledger"), ledger.Options{
				OpeningWindowed: conf.Ledger.OpeningWindowed,
			})
			uc := dashboard.NewDashboardUseCase(agg, st.Bases, st.Equipment, pol, nil)
			out, err := uc.GetEquipmentBreakdown(ctx.Context, cliIdentity, ctx.Int64("base"), r)
			if err != nil {
				return err
			}
			return renderBreakdown(os.Stdout, out)
		},
	}
}

// renderBreakdown escribe el desglose como tabla con separador de miles en español.
func renderBreakdown(w io.Writer, b *dto.EquipmentBreakdownResponse) error {
	p := message.NewPrinter(language.Spanish)
	fmt.Fprintf(w, "Base %d: %s\n", b.BaseID, b.BaseName)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "EQUIPO", "CATEGORÍA", "INICIAL", "NETO", "ASIGNADO", "BAJAS", "CIERRE"})
	for _, it := range b.Items {
		row := []string{
			p.Sprintf("%d", it.EquipmentID),
			it.Name,
			it.Category,
			p.Sprintf("%d", it.OpeningBalance),
			p.Sprintf("%d", it.NetMovement),
			p.Sprintf("%d", it.Assigned),
			p.Sprintf("%d", it.Expended),
			p.Sprintf("%d", it.ClosingBalance),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	t := b.Totals
	if err := table.Append([]string{
		"", "TOTAL", "",
		p.Sprintf("%d", t.OpeningBalance),
		p.Sprintf("%d", t.NetMovement),
		p.Sprintf("%d", t.Assigned),
		p.Sprintf("%d", t.Expended),
		p.Sprintf("%d", t.ClosingBalance),
	}); err != nil {
		return err
	}
	return table.Render()
}
