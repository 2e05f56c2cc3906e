package client

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

/*

Common client settings

*/

const (
	brandName          = "Grid Solvers"
	templatePageSuffix = "Page.tmpl.html"

	applicationNameEnvVar     = "APPLICATION_NAME"
	applicationEnvEnvVar      = "APPLICATION_ENV"
	applicationVersionEnvVar  = "APPLICATION_VERSION"
	applicationInstanceEnvVar = "APPLICATION_INSTANCE"
	applicationBuildEnvVar    = "APPLICATION_BUILD"
)

// The pages and the static files they reference travel inside the
// binary, so a deployed server has no resource directory to lose.
//
//go:embed templates/*.tmpl.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// static URL paths and their embedded counterparts
var staticResourcePaths = map[string]string{
	"/robots.txt": "static/robots.txt",
	"/solver.css": "static/solver.css",
	"/solver.js":  "static/solver.js",
}

/*

handle static resources

*/

// StaticHandler serves the embedded static files; it reports
// whether the request path named one.
func StaticHandler(w http.ResponseWriter, r *http.Request) bool {
	path, ok := staticResourcePaths[r.URL.Path]
	if !ok {
		return false
	}
	bytes, err := staticFiles.ReadFile(path)
	if err != nil {
		log.Printf("Missing embedded static resource %q: %v", path, err)
		http.NotFound(w, r)
		return true
	}
	switch {
	case len(path) > 4 && path[len(path)-4:] == ".css":
		w.Header().Set("Content-Type", "text/css")
	case len(path) > 3 && path[len(path)-3:] == ".js":
		w.Header().Set("Content-Type", "application/javascript")
	default:
		w.Header().Set("Content-Type", "text/plain")
	}
	w.Write(bytes)
	return true
}

/*

find and parse templates

*/

// loadedTemplates is the cache of already-parsed templates
var loadedTemplates = make(map[string]*template.Template)

// loadPageTemplate does what you would expect: give it the
// template name, and it will find and parse the template file
// and return the resulting template.
func loadPageTemplate(name string) (*template.Template, error) {
	if tmpl, ok := loadedTemplates[name]; ok {
		return tmpl, nil
	}
	fp := "templates/" + name + templatePageSuffix
	tmpl, err := template.ParseFS(templateFiles, fp)
	if err != nil {
		return nil, err
	}
	loadedTemplates[name] = tmpl
	return tmpl, nil
}

/*

application footer

*/

// applicationFooter - the application footer that shows at the
// bottom of all pages.
func applicationFooter() string {
	appName := os.Getenv(applicationNameEnvVar)
	appEnv := os.Getenv(applicationEnvEnvVar)
	appVersion := os.Getenv(applicationVersionEnvVar)
	appInstance := os.Getenv(applicationInstanceEnvVar)
	appBuild := os.Getenv(applicationBuildEnvVar)

	if appName == "" {
		appName = brandName
	}

	if appEnv == "" {
		appEnv = "local"
	}

	if appVersion != "" {
		appVersion = " " + appVersion
	}
	if len(appBuild) >= 7 {
		appBuild = appBuild[:7]
	}

	if appInstance != "" {
		appInstance = " (dyno " + appInstance + ")"
	}

	switch appEnv {
	case "local":
		return "[" + appName + " local]"
	case "dev":
		return "[" + appName + " CI/CD]"
	case "stg":
		return "[" + appName + appVersion + " <" + appBuild + ">]"
	case "prd":
		return "[" + appName + appVersion + " <" + appBuild + ">" + appInstance + "]"
	}
	return fmt.Sprintf("[%s <??>]", appName)
}
