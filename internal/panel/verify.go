package panel

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"mailprov/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// AccountExists looks for address in the accounts table until the verify
// timeout runs out.
func (p *panel) AccountExists(ctx context.Context, address string) bool {
	missing := "verify_missing_" + address + ".png"

	if err := p.present(ctx, accountsTableSel, p.options.WaitTimeout); err != nil {
		if ctx.Err() == nil {
			logger.Warn(ctx, "accounts table not found", zap.Error(err))
			p.snapshot(ctx, missing)
		}

		return false
	}

	err := p.until(ctx, p.options.VerifyTimeout, func(ctx context.Context) (bool, error) {
		names, err := p.accountNames(ctx)

		return slices.Contains(names, address), err
	})
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn(ctx, "account row not found", zap.String("address", address))
			p.snapshot(ctx, missing)
		}

		return false
	}

	return true
}

// DuplicateIndicated scans the visible text of the page and its frames for a
// duplicate account message.
func (p *panel) DuplicateIndicated(ctx context.Context) bool {
	docs, err := p.documents(ctx)
	if err != nil {
		logger.Warn(ctx, "could not read page for duplicate check", zap.Error(err))

		return false
	}

	for _, doc := range docs {
		doc.Find("script, style, noscript, template").Remove()
		text := strings.ToLower(doc.Text())
		for _, phrase := range duplicatePhrases {
			if strings.Contains(text, phrase) {
				logger.Debug(ctx, "duplicate message found", zap.String("phrase", phrase))

				return true
			}
		}
	}

	return false
}

// Accounts waits for the accounts table and returns the listed addresses.
func (p *panel) Accounts(ctx context.Context) ([]string, error) {
	if err := p.present(ctx, accountsTableSel, p.options.WaitTimeout); err != nil {
		return nil, fmt.Errorf("accounts table not found: %w", err)
	}

	return p.accountNames(ctx)
}

func (p *panel) accountNames(ctx context.Context) ([]string, error) {
	docs, err := p.documents(ctx)
	if err != nil {
		return nil, err
	}

	return AccountNames(docs...), nil
}

// documents parses the markup of the page and of its same-origin frames.
func (p *panel) documents(ctx context.Context) ([]*goquery.Document, error) {
	var pages []string
	if err := p.driver.Evaluate(ctx, pageHTMLScript, &pages); err != nil {
		return nil, fmt.Errorf("could not read page markup: %w", err)
	}

	docs := make([]*goquery.Document, 0, len(pages))
	for _, html := range pages {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("could not parse page markup: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// AccountNames extracts the addresses of the accounts table rows.
func AccountNames(docs ...*goquery.Document) []string {
	var names []string
	for _, doc := range docs {
		doc.Find(accountNameSel).Each(func(_ int, s *goquery.Selection) {
			if name := strings.Join(strings.Fields(s.Text()), " "); name != "" {
				names = append(names, name)
			}
		})
	}

	return names
}
