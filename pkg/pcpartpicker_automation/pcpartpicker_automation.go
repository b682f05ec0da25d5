package pcpartpicker_automation

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/playwright-community/playwright-go"

	"github.com/Aquilabot/KreaPC-Configurator/internal/utils"
)

var (
	ErrInvalidRegion = errors.New("invalid region")
	ErrNoLinks       = errors.New("build has no PCPartPicker parts to export")
	ErrInvalidLink   = errors.New("not a PCPartPicker product link")
)

const (
	errorInitializingPlaywright = "could not start Playwright: %v"
	errorLaunchingBrowser       = "could not launch browser: %v"
	errorCreatingPage           = "could not create page: %v"
	errorNavigatingURL          = "could not navigate to %s: %v"
	logInitPlaywright           = "Initializing Playwright"
	logErrorCookies             = "Error handling cookies, but we continue: %v"
	logCleanupPlaywright        = "Cleaning up Playwright"
	logErrorCloseBrowser        = "Could not close browser: %v"
	logErrorStopPlaywright      = "Could not stop Playwright: %v"
)

// Export is the shareable part list produced for a build.
type Export struct {
	Region string   `json:"region"`
	URL    string   `json:"url"`
	Parts  []string `json:"parts"`
}

// checkLinks validates the region and the product links before a browser is
// started.
func checkLinks(region string, links []string) (string, error) {
	prefixURL := utils.BuildPrefixURL(region)
	if !utils.MatchPCPPURL(prefixURL) {
		return "", ErrInvalidRegion
	}
	if len(links) == 0 {
		return "", ErrNoLinks
	}
	for _, link := range links {
		if !utils.MatchProductURL(link) {
			return "", fmt.Errorf("%w: %s", ErrInvalidLink, link)
		}
	}
	return prefixURL, nil
}

// ExportBuild adds every product link to a fresh PCPartPicker part list and
// returns the list's permalink.
func ExportBuild(region string, links []string) (*Export, error) {
	prefixURL, err := checkLinks(region, links)
	if err != nil {
		return nil, err
	}

	pw, browser, page, err := initializePlaywright()
	if err != nil {
		return nil, err
	}
	defer cleanup(pw, browser)

	if err := navigateTo(page, prefixURL); err != nil {
		return nil, err
	}

	if err := handleCookies(page); err != nil {
		log.Warnf(logErrorCookies, err)
	}

	if err := addPartsList(prefixURL, page, links); err != nil {
		return nil, err
	}

	listURL, err := readPermalink(page)
	if err != nil {
		return nil, err
	}

	return &Export{Region: region, URL: listURL, Parts: links}, nil
}

func initializePlaywright() (*playwright.Playwright, playwright.Browser, playwright.Page, error) {
	log.Info(logInitPlaywright)
	pw, err := playwright.Run()
	if err != nil {
		return nil, nil, nil, fmt.Errorf(errorInitializingPlaywright, err)
	}
	browser, err := pw.Chromium.Launch()
	if err != nil {
		_ = pw.Stop()
		return nil, nil, nil, fmt.Errorf(errorLaunchingBrowser, err)
	}
	page, err := browser.NewPage()
	if err != nil {
		cleanup(pw, browser)
		return nil, nil, nil, fmt.Errorf(errorCreatingPage, err)
	}
	return pw, browser, page, nil
}

func navigateTo(page playwright.Page, url string) error {
	if _, err := page.Goto(url); err != nil {
		return fmt.Errorf(errorNavigatingURL, url, err)
	}
	return nil
}

func handleCookies(page playwright.Page) error {
	return page.GetByLabel("allow cookies").Click()
}

func addPart(prefixURL string, page playwright.Page, url string) error {
	if err := navigateTo(page, url); err != nil {
		return err
	}
	options := playwright.PageGetByRoleOptions{Name: "Add to Part List"}
	if err := page.GetByRole("link", options).Click(); err != nil {
		return fmt.Errorf("could not click 'Add to Part List': %w", err)
	}

	if err := page.WaitForURL(prefixURL + "list/"); err != nil {
		return fmt.Errorf("error waiting for redirection to the list: %w", err)
	}
	log.Debugf("Added %s to the part list", url)
	return nil
}

func addPartsList(prefixURL string, page playwright.Page, links []string) error {
	for _, link := range links {
		if err := addPart(prefixURL, page, link); err != nil {
			return fmt.Errorf("error adding part from link %s: %w", link, err)
		}
	}
	return nil
}

func readPermalink(page playwright.Page) (string, error) {
	textboxLocator := page.GetByRole("textbox")
	if err := textboxLocator.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateVisible}); err != nil {
		return "", fmt.Errorf("could not wait for the permalink to be visible: %w", err)
	}
	return textboxLocator.InputValue()
}

func cleanup(pw *playwright.Playwright, browser playwright.Browser) {
	log.Info(logCleanupPlaywright)
	if err := browser.Close(); err != nil {
		log.Errorf(logErrorCloseBrowser, err)
	}
	if err := pw.Stop(); err != nil {
		log.Errorf(logErrorStopPlaywright, err)
	}
}
