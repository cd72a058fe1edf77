package harness

import (
	"github.com/pkg/errors"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
	"go.uber.org/zap"

	"github.com/keisetsu/wed/internal/config"
)

// Dialer opens a WebDriver session. selenium.NewRemote satisfies it.
type Dialer func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error)

// Capabilities builds the session capabilities requested by cfg.
func Capabilities(cfg *config.Config) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": cfg.Browser}

	switch cfg.Browser {
	case "chrome":
		var args []string
		if cfg.Headless {
			args = append(args, "--headless", "--disable-gpu")
		}
		caps.AddChrome(chrome.Capabilities{Args: args})
	case "firefox":
		var args []string
		if cfg.Headless {
			args = append(args, "-headless")
		}
		caps.AddFirefox(firefox.Capabilities{Args: args})
	}
	return caps
}

// Connect opens a session on the configured WebDriver server and sets the
// async script timeout to the configured wait timeout.
func Connect(cfg *config.Config, dial Dialer, log *zap.Logger) (selenium.WebDriver, error) {
	timeouts, err := cfg.Timeouts()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	log.Info("connecting to webdriver",
		zap.String("url", cfg.WebDriverURL),
		zap.String("browser", cfg.Browser),
		zap.Bool("headless", cfg.Headless))

	wd, err := dial(Capabilities(cfg), cfg.WebDriverURL)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", cfg.WebDriverURL)
	}

	if err := wd.SetAsyncScriptTimeout(timeouts.Wait); err != nil {
		wd.Quit()
		return nil, errors.Wrap(err, "setting async script timeout")
	}
	return wd, nil
}
