// Command gridscape serves the terrain-grid wasm client with its page
// bootstrap. The renderer itself lives in the engine package; this server is
// plain delivery plumbing.
package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"embed"
	"flag"
	"fmt"
	"log"
	"math/big"
	"net"
	"net/http"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/gridscape/gridscape/static"
)

var (
	//go:embed templates/*
	templatesFS embed.FS
	indexTmpl   = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

	port     = flag.Int("port", 80, "http port to listen on")
	useTLS   = flag.Bool("tls", false, "enable HTTPS with a self-signed certificate")
	basePath = flag.String("base_path", "", "base path to serve on, e.g. '/terrain/'")
	distDir  = flag.String("dist_dir", "dist", "directory holding the built app.wasm (plus app.wasm.gz and wasm_exec.js)")
)

type server struct {
	basePath string
}

func (s server) index(w http.ResponseWriter, r *http.Request) {
	// By default "/" matches any path - e.g. "/non-existent".
	if r.URL.Path != s.basePath {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
		}
		return
	}

	data := map[string]any{
		"BasePath": s.basePath,
	}
	indexTmpl.Execute(w, data)
}

// makeGzipHandler returns a handler which serves a pre-gzipped version of
// the wasm binary to clients that accept it.
func makeGzipHandler(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			h.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "application/wasm")
		r.URL.Path += ".gz"
		r.URL.RawPath += ".gz"
		h.ServeHTTP(w, r)
	}
}

func logRequest(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr := &statusRecorder{
			ResponseWriter: w,
			Status:         200,
		}
		handler.ServeHTTP(sr, r)
		log.Printf("%s %s %d %s\n", r.RemoteAddr, r.Method, sr.Status, r.URL)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func canonicalizeBasePath(s string) string {
	bp := s
	if !strings.HasSuffix(bp, "/") {
		bp = bp + "/"
	}
	if !strings.HasPrefix(bp, "/") {
		bp = "/" + bp
	}
	return bp
}

func main() {
	flag.Parse()

	basePath := canonicalizeBasePath(*basePath)
	srv := server{
		basePath: basePath,
	}

	http.HandleFunc(basePath, srv.index)

	staticHandler := http.FileServer(http.FS(static.FS))
	http.Handle(basePath+"static/", http.StripPrefix(basePath+"static/", staticHandler))

	distHandler := http.FileServer(http.Dir(*distDir))
	http.Handle(basePath+"dist/", http.StripPrefix(basePath+"dist/", distHandler))
	http.Handle(basePath+"dist/app.wasm", http.StripPrefix(basePath+"dist/", makeGzipHandler(distHandler)))

	addr := fmt.Sprintf(":%d", *port)
	handler := logRequest(http.DefaultServeMux)

	if *useTLS {
		tlsCert, err := generateSelfSignedCert()
		if err != nil {
			log.Fatalf("Failed to generate self-signed certificate: %v", err)
		}
		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
			TLSConfig: &tls.Config{
				Certificates: []tls.Certificate{tlsCert},
			},
		}
		log.Printf("Listening on https://0.0.0.0%s", addr)
		if err := srv.ListenAndServeTLS("", ""); err != nil {
			log.Println("Failed to start server", err)
			os.Exit(1)
		}
	} else {
		log.Printf("Listening on http://0.0.0.0%s", addr)
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Println("Failed to start server", err)
			os.Exit(1)
		}
	}
}

// generateSelfSignedCert creates an in-memory self-signed TLS certificate.
func generateSelfSignedCert() (tls.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("generating key: %v", err)
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("generating serial number: %v", err)
	}

	tmpl := x509.Certificate{
		SerialNumber: serialNumber,
		Subject:      pkix.Name{Organization: []string{"gridscape dev"}},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(0, 0, 0, 0), net.IPv6loopback},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("creating certificate: %v", err)
	}

	return tls.Certificate{
		Certificate: [][]byte{certDER},
		PrivateKey:  key,
	}, nil
}
