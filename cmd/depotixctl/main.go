// depotixctl herramienta de línea de comandos sobre el motor de unidades y la API de Depotix.
//
//	depotixctl convert   -pallet-factor 10 -package-factor 12 -pallets 2 -packages 3 -singles 5
//	depotixctl breakdown -pallet-factor 10 -package-factor 12 -qty 281
//	depotixctl breakdown -item <id> -qty 281
//	depotixctl validate  -pallet-factor 10 -package-factor 12 -type OUT -available 1000 -pallets 9
//	depotixctl move      -item <id> -type IN -pallets 2 -partner <proveedor>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/text/language"

	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/uom"
	"github.com/depotix/depotix-api/internal/i18n"
	"github.com/depotix/depotix-api/pkg/client"
	"github.com/depotix/depotix-api/pkg/config"
	"github.com/depotix/depotix-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})
	log.Debug().Str("api", cfg.Client.BaseURL).Msg("depotixctl")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], cli{cfg: cfg.Client, lang: cfg.App.DefaultLang, out: os.Stdout, errOut: os.Stderr}))
}

type cli struct {
	cfg    config.ClientConfig
	lang   string
	out    io.Writer
	errOut io.Writer
}

// quantityFlags flags comunes de cantidad y factores.
type quantityFlags struct {
	palletFactor, packageFactor int64
	pallets, packages, singles  string
	qty                         string
}

func (q *quantityFlags) register(fs *flag.FlagSet) {
	fs.Int64Var(&q.palletFactor, "pallet-factor", 1, "paquetes por palé")
	fs.Int64Var(&q.packageFactor, "package-factor", 1, "unidades por paquete")
	fs.StringVar(&q.pallets, "pallets", "", "palés")
	fs.StringVar(&q.packages, "packages", "", "paquetes")
	fs.StringVar(&q.singles, "singles", "", "unidades sueltas")
	fs.StringVar(&q.qty, "qty", "", "cantidad total en unidades base")
}

func (q *quantityFlags) factors() uom.UnitFactors {
	return uom.UnitFactors{PalletFactor: q.palletFactor, PackageFactor: q.packageFactor}
}

// ppu lee los niveles como lo hace el formulario: texto libre, vacío = 0.
func (q *quantityFlags) ppu() uom.PPUInput {
	return uom.PPUInput{
		Pallets:  uom.ParseQuantity(q.pallets),
		Packages: uom.ParseQuantity(q.packages),
		Singles:  uom.ParseQuantity(q.singles),
	}
}

func (q *quantityFlags) ppuMode() bool {
	return q.pallets != "" || q.packages != "" || q.singles != ""
}

func run(ctx context.Context, args []string, c cli) int {
	if len(args) == 0 {
		fmt.Fprintln(c.errOut, "uso: depotixctl <convert|breakdown|validate|move> [flags]")
		return 2
	}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	lang := fs.String("lang", c.lang, "idioma de los mensajes (de | en)")
	var q quantityFlags
	q.register(fs)
	itemID := fs.String("item", "", "id del artículo (consulta la API)")
	typ := fs.String("type", "", "IN | OUT | RETURN | DEFECT | ADJUST")
	available := fs.Int64("available", 0, "stock disponible para validate")
	partner := fs.String("partner", "", "proveedor (IN) o cliente (OUT/RETURN)")
	note := fs.String("note", "", "nota del movimiento")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	tag := i18n.Parse(*lang)

	var err error
	switch args[0] {
	case "convert":
		err = c.convert(tag, q)
	case "breakdown":
		err = c.breakdown(ctx, tag, q, *itemID)
	case "validate":
		err = c.validate(tag, q, entity.MovementType(strings.ToUpper(*typ)), *available)
	case "move":
		err = c.move(ctx, tag, q, *itemID, entity.MovementType(strings.ToUpper(*typ)), *partner, *note)
	default:
		fmt.Fprintf(c.errOut, "comando desconocido: %s\n", args[0])
		return 2
	}
	if err != nil {
		fmt.Fprintln(c.errOut, client.ParseAPIErrorIn(tag, err))
		return 1
	}
	return 0
}

func (c cli) convert(tag language.Tag, q quantityFlags) error {
	in := q.ppu()
	if errs := uom.ValidatePPUInput(in, q.factors()); len(errs) > 0 {
		return &client.ValidationErrors{Errors: errs}
	}
	base, err := uom.CalculateQtyBase(in, q.factors())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s = %s\n", i18n.Breakdown(tag, in, ""), uom.FormatQuantity(base))
	return nil
}

func (c cli) breakdown(ctx context.Context, tag language.Tag, q quantityFlags, itemID string) error {
	qty := uom.ParseQuantity(q.qty)
	if itemID != "" {
		b, err := client.New(c.cfg, tag.String()).Breakdown(ctx, itemID, qty)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s = %s\n", b.Formatted, b.Text)
		return nil
	}
	if !q.factors().Valid() {
		return &client.ValidationErrors{Errors: uom.ValidatePPUInput(uom.PPUInput{Singles: 1}, q.factors())}
	}
	in := uom.ConvertFromBase(qty, q.factors())
	fmt.Fprintf(c.out, "%s = %s\n", uom.FormatQuantity(qty), i18n.Breakdown(tag, in, ""))
	return nil
}

func (c cli) validate(tag language.Tag, q quantityFlags, t entity.MovementType, available int64) error {
	if !t.Valid() {
		return errors.New(i18n.Text(tag, i18n.KeyInvalidType, t))
	}
	var errs []uom.ValidationError
	var base int64
	if q.ppuMode() {
		in := q.ppu()
		errs = uom.ValidatePPUInput(in, q.factors())
		if len(errs) == 0 {
			var err error
			if base, err = uom.CalculateQtyBase(in, q.factors()); err != nil {
				return err
			}
		}
	} else {
		base = uom.ParseQuantity(q.qty)
		if base <= 0 {
			errs = append(errs, uom.ValidationError{Field: uom.FieldQtyBase, Kind: uom.KindQuantityRequired})
		}
	}
	if len(errs) == 0 {
		if e := uom.ValidateMovementType(t, base, available); e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		return &client.ValidationErrors{Errors: errs}
	}
	after, err := uom.StockAfter(t, base, available)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "OK %s %s: %s -> %s\n", t, uom.FormatQuantity(base), uom.FormatQuantity(available), uom.FormatQuantity(after))
	return nil
}

func (c cli) move(ctx context.Context, tag language.Tag, q quantityFlags, itemID string, t entity.MovementType, partner, note string) error {
	if itemID == "" {
		return errors.New("-item es obligatorio")
	}
	api := client.New(c.cfg, tag.String())
	item, err := api.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	s := api.NewMovementSession(*item, t)
	s.Partner, s.Note = partner, note
	if q.ppuMode() {
		s.SetPPU(q.ppu())
	} else {
		s.SetTotal(uom.ParseQuantity(q.qty))
	}
	res, err := s.Submit(ctx)
	if err != nil {
		return err
	}
	state := "creado"
	if res.Replayed {
		state = "ya registrado"
	}
	fmt.Fprintf(c.out, "%s %s %s (%s)\n", res.Movement.ID, res.Movement.Type, uom.FormatQuantity(res.Movement.QtyBase), state)
	return nil
}
