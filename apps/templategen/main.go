package main

import (
	"context"
	"fmt"
	"os"

	"github.com/smallbiznis/invoicefill/internal/config"
	"github.com/smallbiznis/invoicefill/internal/providers/pdf"
	"github.com/urfave/cli/v2"
)

func main() {
	defaults := pdf.DefaultTemplateData()

	app := &cli.App{
		Name:  "templategen",
		Usage: "write a blank invoice template for the overlay service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file",
				EnvVars: []string{"TEMPLATE_PATH"},
				Value:   config.DefaultTemplatePath,
			},
			&cli.StringFlag{Name: "seller", Usage: "seller name", Value: defaults.SellerName},
			&cli.StringFlag{Name: "address", Usage: "seller address"},
			&cli.StringFlag{Name: "contact", Usage: "seller email or phone"},
			&cli.StringFlag{Name: "footer", Usage: "footer note", Value: defaults.Footer},
			&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
		},
		Action: generate,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "templategen:", err)
		os.Exit(1)
	}
}

func generate(c *cli.Context) error {
	out := c.String("out")
	if !c.Bool("force") {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%s exists, pass --force to overwrite", out)
		}
	}

	doc, err := pdf.New().GenerateTemplate(context.Background(), pdf.TemplateData{
		SellerName:    c.String("seller"),
		SellerAddress: c.String("address"),
		SellerContact: c.String("contact"),
		Footer:        c.String("footer"),
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(c.App.Writer, "wrote %s (%d bytes)\n", out, len(doc))
	return nil
}
