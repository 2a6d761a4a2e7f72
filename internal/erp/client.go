package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/ravenerp/journey-sync/internal/errors"
	"github.com/ravenerp/journey-sync/internal/model"
)

const (
	// maxRedirects matches the default net/http limit.
	maxRedirects = 10

	// httpClientTimeout bounds every call except the health probe,
	// which applies its own shorter deadline.
	httpClientTimeout = 30 * time.Second

	// healthTimeout is the fixed deadline for the connectivity probe.
	healthTimeout = 8 * time.Second

	// maxAPIResponseBytes caps response body reads so a misbehaving
	// server cannot consume unbounded memory.
	maxAPIResponseBytes = 1024 * 1024
)

// Client is the HTTP implementation of API. The server address is
// resolved per call through resolveURL, so changing the configured
// server takes effect without rebuilding the client. Each user action
// gets exactly one attempt; there is no retry layer.
type Client struct {
	httpClient *http.Client
	resolveURL func() string
	logger     *slog.Logger
	catalog    singleflight.Group
}

var _ API = (*Client)(nil)

// sameHostRedirectPolicy follows redirects only when the target host
// matches the original request host, so nothing configured for one
// server ever reaches another.
func sameHostRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("stopped after 10 redirects")
	}

	if len(via) > 0 && req.URL.Host != via[0].URL.Host {
		return fmt.Errorf("redirect to different host blocked: %s -> %s", via[0].URL.Host, req.URL.Host)
	}

	return nil
}

// NewClient creates an ERP client. resolveURL returns the configured
// server address, empty when the device has none yet. If httpClient
// is nil, a client with a 30-second timeout and same-host redirect
// policy is used.
func NewClient(resolveURL func() string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:       httpClientTimeout,
			CheckRedirect: sameHostRedirectPolicy,
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: httpClient,
		resolveURL: resolveURL,
		logger:     logger,
	}
}

// baseURL resolves the configured server address, normalized without
// a trailing slash. It fails before any network traffic when the
// address is unset.
func (c *Client) baseURL() (string, error) {
	raw := strings.TrimRight(strings.TrimSpace(c.resolveURL()), "/")
	if raw == "" {
		return "", apperrors.ErrServerURLNotSet
	}

	return raw, nil
}

// sanitizeResponseBody truncates and sanitizes a response body for
// inclusion in error messages. Limits to 256 bytes and replaces
// non-printable characters to prevent log injection.
func sanitizeResponseBody(body []byte) string {
	const maxLen = 256
	if len(body) > maxLen {
		body = body[:maxLen]
	}

	var clean []byte

	for len(body) > 0 {
		r, size := utf8.DecodeRune(body)
		if r == utf8.RuneError && size <= 1 {
			clean = append(clean, '?')
			body = body[1:]

			continue
		}

		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			clean = append(clean, '?')
		} else {
			clean = append(clean, body[:size]...)
		}

		body = body[size:]
	}

	return string(clean)
}

// do sends one request and returns the status code and the capped
// response body.
func (c *Client) do(ctx context.Context, method, endpoint string, contentType string, body io.Reader) (int, []byte, error) {
	base, err := c.baseURL()
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, base+endpoint, body)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %v", apperrors.ErrAPIRequest, method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("reading response from %s: %w", endpoint, err)
	}

	return resp.StatusCode, respBody, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (int, []byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, "application/json", nil)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshalling request body: %w", err)
	}

	return c.do(ctx, http.MethodPost, endpoint, "application/json", bytes.NewReader(body))
}

func statusError(method, endpoint string, status int, body []byte) error {
	return fmt.Errorf("%w: %s %s returned status %d: %s",
		apperrors.ErrAPIResponse, method, endpoint, status, sanitizeResponseBody(body))
}

// Health probes GET /health under a fixed 8-second deadline.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	status, body, err := c.get(ctx, "/health")
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		return statusError(http.MethodGet, "/health", status, body)
	}

	return nil
}

// Employee resolves an employee key via GET /empleados/{clave}.
func (c *Client) Employee(ctx context.Context, clave string) (model.Employee, error) {
	endpoint := "/empleados/" + url.PathEscape(clave)

	status, body, err := c.get(ctx, endpoint)
	if err != nil {
		return model.Employee{}, err
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return model.Employee{}, fmt.Errorf("%q: %w", clave, apperrors.ErrEmployeeNotFound)
	default:
		return model.Employee{}, statusError(http.MethodGet, endpoint, status, body)
	}

	doc := gjson.ParseBytes(body)

	emp := model.Employee{
		CveEmple: doc.Get("cve_emple").String(),
		Descri:   doc.Get("descri").String(),
		Depto:    doc.Get("depto").String(),
	}

	if emp.CveEmple == "" {
		emp.CveEmple = clave
	}

	return emp, nil
}

// Trip fetches a remote trip via GET /viajes/{id}. Fields are pulled
// out individually so unknown server fields never leak into local
// records.
func (c *Client) Trip(ctx context.Context, id string) (*model.RemoteTrip, error) {
	endpoint := "/viajes/" + url.PathEscape(id)

	status, body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("remote trip %q: %w", id, apperrors.ErrTripNotFound)
	default:
		return nil, statusError(http.MethodGet, endpoint, status, body)
	}

	doc := gjson.ParseBytes(body)

	rt := &model.RemoteTrip{
		ID:            firstString(doc, "id", "clave", "cve_viaje"),
		Titulo:        doc.Get("titulo").String(),
		FechaInicio:   doc.Get("fecha_inicio").String(),
		Presupuesto:   doc.Get("presupuesto").Float(),
		UUIDMovil:     doc.Get("uuid_movil").String(),
		NombreUsuario: doc.Get("nombre_usuario").String(),
		ColorAcento:   doc.Get("color_acento").String(),
	}

	if rt.ID == "" {
		rt.ID = id
	}

	doc.Get("paradas").ForEach(func(_, p gjson.Result) bool {
		stop := model.RemoteStop{
			ID:          p.Get("id").String(),
			Fecha:       p.Get("fecha").String(),
			Lugar:       p.Get("lugar").String(),
			Hora:        p.Get("hora").String(),
			Monto:       p.Get("monto").Float(),
			Categoria:   p.Get("cve_catvj").String(),
			Facturable:  p.Get("facturable").Bool(),
			Lat:         p.Get("lat").Float(),
			Lng:         p.Get("lng").Float(),
			Descripcion: p.Get("descripcion").String(),
			Notas:       p.Get("notas").String(),
		}

		p.Get("evidencias").ForEach(func(_, e gjson.Result) bool {
			stop.Evidencias = append(stop.Evidencias, model.RemoteEvidence{
				TipoArchivo: e.Get("tipo_archivo").String(),
				URLArchivo:  e.Get("url_archivo").String(),
				Fuente:      e.Get("fuente").String(),
			})

			return true
		})

		rt.Paradas = append(rt.Paradas, stop)

		return true
	})

	doc.Get("notas").ForEach(func(_, n gjson.Result) bool {
		rt.Notas = append(rt.Notas, model.Note{
			ID:        n.Get("id").String(),
			Titulo:    n.Get("titulo").String(),
			Contenido: n.Get("contenido").String(),
			TipoNota:  model.NoteType(n.Get("tipo_nota").String()),
		})

		return true
	})

	return rt, nil
}

// SubmitTrip pushes the flattened trip via POST /viajes and returns
// the identifier the ERP assigned. "clave" wins over "cve_viaje" when
// the response carries both.
func (c *Client) SubmitTrip(ctx context.Context, payload model.TripPayload) (string, error) {
	status, body, err := c.postJSON(ctx, "/viajes", payload)
	if err != nil {
		return "", err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return "", statusError(http.MethodPost, "/viajes", status, body)
	}

	doc := gjson.ParseBytes(body)

	remoteID := firstString(doc, "clave", "cve_viaje")
	if remoteID == "" {
		return "", fmt.Errorf("%w: POST /viajes answered without a trip identifier", apperrors.ErrAPIResponse)
	}

	return remoteID, nil
}

// UploadFiles sends local files as one multipart batch to
// POST /viajes/upload and returns the remote URLs in input order.
func (c *Client) UploadFiles(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, p := range paths {
		if err := appendFilePart(writer, p); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, "/viajes/upload", writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return nil, statusError(http.MethodPost, "/viajes/upload", status, body)
	}

	var urls []string

	gjson.GetBytes(body, "urls").ForEach(func(_, u gjson.Result) bool {
		urls = append(urls, u.String())

		return true
	})

	if len(urls) != len(paths) {
		return nil, fmt.Errorf("%w: uploaded %d files but received %d URLs",
			apperrors.ErrAPIResponse, len(paths), len(urls))
	}

	return urls, nil
}

// Categories fetches the stop-category catalog. Concurrent callers
// share one request. An unreachable server or an empty answer falls
// back to the built-in catalog so the editor always has categories
// to offer.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	result, err, _ := c.catalog.Do("categorias", func() (any, error) {
		return c.fetchCategories(ctx), nil
	})
	if err != nil {
		return nil, err
	}

	cats, _ := result.([]model.Category)

	return cats, nil
}

func (c *Client) fetchCategories(ctx context.Context) []model.Category {
	status, body, err := c.get(ctx, "/viajes/categorias")
	if err != nil || status != http.StatusOK {
		if err != nil {
			c.logger.Warn("category catalog unavailable, using built-in catalog", slog.Any("error", err))
		} else {
			c.logger.Warn("category catalog unavailable, using built-in catalog", slog.Int("status", status))
		}

		return FallbackCategories()
	}

	var cats []model.Category

	gjson.ParseBytes(body).ForEach(func(_, cat gjson.Result) bool {
		cats = append(cats, model.Category{
			CveCatVJ: cat.Get("cve_catvj").String(),
			Nombre:   cat.Get("nombre").String(),
			Icon:     cat.Get("icon").String(),
		})

		return true
	})

	if len(cats) == 0 {
		c.logger.Warn("category catalog empty, using built-in catalog")

		return FallbackCategories()
	}

	return cats
}

// firstString returns the first non-empty string among the named
// fields of doc.
func firstString(doc gjson.Result, fields ...string) string {
	for _, f := range fields {
		if v := doc.Get(f).String(); v != "" {
			return v
		}
	}

	return ""
}

// appendFilePart adds one file to the multipart body. PDFs upload as
// application/pdf, everything else as an image type derived from the
// extension.
func appendFilePart(writer *multipart.Writer, p string) error {
	local := strings.TrimPrefix(p, "file://")

	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("opening %s: %w", local, err)
	}
	defer f.Close()

	name := filepath.Base(local)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
	header.Set("Content-Type", fileContentType(name))

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating multipart section for %s: %w", name, err)
	}

	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copying %s into multipart body: %w", name, err)
	}

	return nil
}

func fileContentType(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")

	switch ext {
	case "pdf":
		return "application/pdf"
	case "":
		return "image/jpeg"
	default:
		return "image/" + ext
	}
}
