package config

import (
	"fmt"
	"strings"
	"time"

	"scraper/internal/model"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

type Config struct {
	DatabaseDSN       string        `hcl:"database_dsn" env:"DATABASE_DSN" required:"true"`
	TelegramBotToken  string        `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChannelID int64         `hcl:"telegram_channel_id" env:"TELEGRAM_CHANNEL_ID"`
	Sources           []string      `hcl:"sources" env:"SOURCES" default:"ADDitude Magazine|https://www.additudemag.com/feed/|feed|en,Medical News Today|https://www.medicalnewstoday.com/rss/adhd|feed|en,Psychology Today|https://www.psychologytoday.com/intl/front/feed|feed|en,Altibbi|https://altibbi.com/مقالات-طبية/الصحة-النفسية|listing|ar,WebTeb|https://www.webteb.com/mental-health|listing|ar"`
	FilterKeywords    []string      `hcl:"filter_keywords" env:"FILTER_KEYWORDS" default:"adhd,تشتت,انتباه,فرط حركة,masking,burnout,rejection sensitive,rsd,النمو العصبي,neurodiversity,depression"`
	DefaultImages     []string      `hcl:"default_images" env:"DEFAULT_IMAGES" default:"https://images.pexels.com/photos/8560016/pexels-photo-8560016.jpeg,https://images.pexels.com/photos/5710953/pexels-photo-5710953.jpeg,https://images.pexels.com/photos/7579174/pexels-photo-7579174.jpeg,https://images.pexels.com/photos/8560014/pexels-photo-8560014.jpeg"`
	MaxSavedPerRun    int           `hcl:"max_saved_per_run" env:"MAX_SAVED_PER_RUN" default:"5"`
	FetchTimeout      time.Duration `hcl:"fetch_timeout" env:"FETCH_TIMEOUT" default:"15s"`
	ImageTimeout      time.Duration `hcl:"image_timeout" env:"IMAGE_TIMEOUT" default:"10s"`
	TranslateTimeout  time.Duration `hcl:"translate_timeout" env:"TRANSLATE_TIMEOUT" default:"20s"`
	ChunkThreshold    int           `hcl:"chunk_threshold" env:"CHUNK_THRESHOLD" default:"2000"`
	ChunkPause        time.Duration `hcl:"chunk_pause" env:"CHUNK_PAUSE" default:"500ms"`
	SavePause         time.Duration `hcl:"save_pause" env:"SAVE_PAUSE" default:"3s"`
	MinContentLength  int           `hcl:"min_content_length" env:"MIN_CONTENT_LENGTH" default:"300"`
}

func Load() (Config, error) {
	var cfg Config

	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SCRAPER",
		Files:     []string{"./config.hcl", "./config.local.hcl"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	if err := loader.Load(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseSources decodes "name|endpoint|mode|lang[|selector]" descriptors.
func ParseSources(encoded []string) ([]model.Source, error) {
	sources := make([]model.Source, 0, len(encoded))

	for _, entry := range encoded {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, "|")
		if len(parts) < 4 {
			return nil, fmt.Errorf("source %q: want name|endpoint|mode|lang[|selector]", entry)
		}

		src := model.Source{
			Name:     strings.TrimSpace(parts[0]),
			Endpoint: strings.TrimSpace(parts[1]),
			Mode:     strings.TrimSpace(parts[2]),
			Lang:     strings.TrimSpace(parts[3]),
		}

		if len(parts) > 4 {
			src.Selector = strings.TrimSpace(parts[4])
		}

		if src.Mode != model.ModeFeed && src.Mode != model.ModeListing {
			return nil, fmt.Errorf("source %q: unknown mode %q", src.Name, src.Mode)
		}

		if src.Lang != model.LangArabic && src.Lang != model.LangEnglish {
			return nil, fmt.Errorf("source %q: unknown lang %q", src.Name, src.Lang)
		}

		sources = append(sources, src)
	}

	return sources, nil
}
