package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/meshkit/gltf_mesh_exporter/config"
)

var serverDirectory string
var serverSettings config.Settings

// StartServer serves extraction previews for every mesh file in dir: a file
// list, per-mesh primitive metadata and ready .glb downloads.
func StartServer(addr string, dir string, settings config.Settings) error {
	serverDirectory = dir
	serverSettings = settings

	r := mux.NewRouter()
	r.HandleFunc("/json/mesh", HandlerListMeshes)
	r.HandleFunc("/json/mesh/{file}", HandlerMeshInfo)
	r.HandleFunc("/dump/mesh/{file}", HandlerMeshGlb)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
