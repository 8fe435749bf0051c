package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/config"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/solr"
	"golang.org/x/text/language"
)

// git commit used for this build; supplied at compile time
var gitCommit string

type poolVersion struct {
	BuildVersion string `json:"build,omitempty"`
	GoVersion    string `json:"go_version,omitempty"`
	GitCommit    string `json:"git_commit,omitempty"`
}

type poolTranslations struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

type poolContext struct {
	config       *config.Config
	translations poolTranslations
	version      poolVersion
	solr         *solr.Client
}

func (p *poolContext) initVersion() {
	buildVersion := "unknown"
	files, _ := filepath.Glob("buildtag.*")
	if len(files) == 1 {
		buildVersion = strings.Replace(files[0], "buildtag.", "", 1)
	}

	p.version = poolVersion{
		BuildVersion: buildVersion,
		GoVersion:    fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		GitCommit:    gitCommit,
	}

	log.Printf("[POOL] version.BuildVersion      = [%s]", p.version.BuildVersion)
	log.Printf("[POOL] version.GoVersion         = [%s]", p.version.GoVersion)
	log.Printf("[POOL] version.GitCommit         = [%s]", p.version.GitCommit)
}

func (p *poolContext) initSolr() {
	var logger *log.Logger

	if p.config.Service.Verbose == true {
		logger = log.Default()
	}

	p.solr = solr.NewClient(p.config.Solr.Config, logger)

	log.Printf("[POOL] solr.url                  = [%s]", p.solr.URL())
}

func (p *poolContext) initTranslations(dir string) {
	defaultLang := language.English

	if p.config.Service.DefaultLanguage != "" {
		if tag, err := language.Parse(p.config.Service.DefaultLanguage); err == nil {
			defaultLang = tag
		} else {
			log.Printf("[POOL] ignoring invalid default language [%s]: %s", p.config.Service.DefaultLanguage, err.Error())
		}
	}

	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	tomls, _ := filepath.Glob(filepath.Join(dir, "*.toml"))
	for _, f := range tomls {
		log.Printf("[POOL] loading translations %s ...", f)
		bundle.MustLoadMessageFile(f)
	}

	p.translations = poolTranslations{
		bundle:      bundle,
		defaultLang: defaultLang,
	}

	log.Printf("[POOL] translations.default      = [%s]", defaultLang.String())
}

// hasMessage reports whether id is translated in every loaded language.
func (p *poolContext) hasMessage(id string) bool {
	tags := p.translations.bundle.LanguageTags()

	if len(tags) == 0 {
		return false
	}

	for _, tag := range tags {
		localizer := i18n.NewLocalizer(p.translations.bundle, tag.String())

		_, msgTag, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: id})
		if err != nil || msgTag != tag {
			log.Printf("[VALIDATE] message id [%s] is not translated for language [%s]", id, tag.String())
			return false
		}
	}

	return true
}

func (p *poolContext) validateConfig() {
	if err := p.config.Validate(p.hasMessage); err != nil {
		log.Printf("[POOL] %s", err.Error())
		log.Printf("[POOL] exiting due to error(s) above")
		os.Exit(1)
	}

	for _, f := range p.config.Facets {
		log.Printf("[POOL] facet [%s] on [%s] (auth: [%s]) sort: [%s] container: [%s]", f.Name, f.Field, f.FieldAuth, f.Sort, f.Container.Type)
	}
}

func initializePool(cfg *config.Config, i18nDir string) *poolContext {
	p := poolContext{}

	p.config = cfg
	p.initTranslations(i18nDir)
	p.initVersion()
	p.initSolr()

	p.validateConfig()

	return &p
}
