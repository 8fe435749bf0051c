package main

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/uvalib/virgo4-jwt/v4jwt"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/facet"
	"golang.org/x/text/language"
)

type clientOpts struct {
	debug   bool // controls whether debug info is added to results
	verbose bool // controls whether verbose Solr requests/responses are logged
}

type clientContext struct {
	reqID       string          // internally generated
	start       time.Time       // internally set
	opts        clientOpts      // options set by client
	claims      *v4jwt.V4Claims // information about this user
	localizer   *i18n.Localizer // per-request localization
	ginCtx      *gin.Context    // gin context
	acceptLang  string          // first language requested by client
	contentLang string          // actual language we are responding with
	contentTag  language.Tag    // parsed form of the above
}

func boolOptionWithFallback(opt string, fallback bool) bool {
	var err error
	var val bool

	if val, err = strconv.ParseBool(opt); err != nil {
		val = fallback
	}

	return val
}

func (c *clientContext) init(p *poolContext, ctx *gin.Context) {
	c.ginCtx = ctx

	c.start = time.Now()
	c.reqID = fmt.Sprintf("%08x", rand.Uint32())

	// get claims, if any
	if val, ok := ctx.Get("claims"); ok == true {
		c.claims = val.(*v4jwt.V4Claims)
	}

	// determine client preferred language
	c.acceptLang = strings.Split(ctx.GetHeader("Accept-Language"), ",")[0]
	if c.acceptLang == "" {
		c.acceptLang = p.translations.defaultLang.String()
	}

	c.localizer = i18n.NewLocalizer(p.translations.bundle, c.acceptLang)

	// the response language is whichever one the bundle matched for the client
	c.contentTag = p.translations.defaultLang
	if tags := p.translations.bundle.LanguageTags(); len(tags) > 0 {
		if accepted, _, err := language.ParseAcceptLanguage(c.acceptLang); err == nil && len(accepted) > 0 {
			tag, _, _ := language.NewMatcher(tags).Match(accepted...)
			base, _ := tag.Base()
			c.contentTag = language.Make(base.String())
		}
	}
	c.contentLang = c.contentTag.String()

	ctx.Header("Content-Language", c.contentLang)

	c.opts.debug = boolOptionWithFallback(ctx.Query("debug"), false)
	c.opts.verbose = boolOptionWithFallback(ctx.Query("verbose"), false)
}

func (c *clientContext) logRequest() {
	c.log("------------------------------[ NEW REQUEST ]------------------------------")

	query := ""
	if c.ginCtx.Request.URL.RawQuery != "" {
		query = fmt.Sprintf("?%s", c.ginCtx.Request.URL.RawQuery)
	}

	claimsStr := ""
	if c.claims != nil {
		claimsStr = fmt.Sprintf("  [%s; %s; %s; %v]", c.claims.UserID, c.claims.Role, c.claims.AuthMethod, c.claims.IsUVA)
	}

	c.log("[REQUEST] %s %s%s  (%s) => (%s)%s", c.ginCtx.Request.Method, c.ginCtx.Request.URL.Path, query, c.acceptLang, c.contentLang, claimsStr)
}

func (c *clientContext) logResponse(resp searchResponse) {
	msg := fmt.Sprintf("[RESPONSE] status: %d", resp.status)

	if resp.err != nil {
		msg = msg + fmt.Sprintf(", error: %s", resp.err.Error())
	}

	c.log(msg)
}

func (c *clientContext) printf(prefix, format string, args ...interface{}) {
	str := fmt.Sprintf(format, args...)

	if prefix != "" {
		str = strings.Join([]string{prefix, str}, " ")
	}

	log.Printf("[%s] %s", c.reqID, str)
}

func (c *clientContext) log(format string, args ...interface{}) {
	c.printf("", format, args...)
}

func (c *clientContext) err(format string, args ...interface{}) {
	c.printf("ERROR:", format, args...)
}

// translate returns the localized message for id, if there is one.
func (c *clientContext) translate(id string) (string, bool) {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return "", false
	}

	return msg, true
}

func (c *clientContext) localize(id string) string {
	if msg, ok := c.translate(id); ok == true {
		return msg
	}

	return id
}

// collator orders labels for the response language; one per request, as
// collators are not safe for concurrent use.
func (c *clientContext) collator() facet.Collator {
	return facet.NewCollator(c.contentTag)
}

func (c *clientContext) isAuthenticated() bool {
	if c.claims == nil {
		return false
	}

	return c.claims.IsUVA
}
