package web

import (
	"bytes"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"github.com/meshkit/gltf_mesh_exporter/mesh"
	"github.com/meshkit/gltf_mesh_exporter/meshfile"
	"github.com/meshkit/gltf_mesh_exporter/utils"
	"github.com/meshkit/gltf_mesh_exporter/utils/gltfutils"
	"github.com/meshkit/gltf_mesh_exporter/webutils"
)

type primitiveInfo struct {
	Material     int32    `json:"material"`
	Vertices     int      `json:"vertices"`
	Indices      int      `json:"indices"`
	Attributes   []string `json:"attributes"`
	MorphTargets []string `json:"morphTargets,omitempty"`
}

type meshInfo struct {
	Name       string          `json:"name"`
	Primitives []primitiveInfo `json:"primitives"`
}

func HandlerListMeshes(w http.ResponseWriter, r *http.Request) {
	entries, err := ioutil.ReadDir(serverDirectory)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	files := make([]string, 0)
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	webutils.WriteJson(w, files)
}

func extractForFile(file string) (*meshfile.Document, []*mesh.Primitive, error) {
	doc, err := meshfile.Load(filepath.Join(serverDirectory, filepath.Base(file)))
	if err != nil {
		return nil, nil, err
	}
	settings, err := serverSettings.ToMesh()
	if err != nil {
		return nil, nil, err
	}
	prims := mesh.ExtractPrimitives(doc, doc, nil, settings, &mesh.Logger{Writer: os.Stdout})
	return doc, prims, nil
}

func HandlerMeshInfo(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	doc, prims, err := extractForFile(file)
	if err != nil {
		log.Printf("Error extracting mesh %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}

	info := meshInfo{Name: doc.Name}
	for _, prim := range prims {
		pi := primitiveInfo{
			Material:   prim.Material,
			Vertices:   prim.VertexCount(),
			Indices:    len(prim.Indices),
			Attributes: prim.AttributeNames(),
		}
		for _, morph := range prim.MorphTargets {
			pi.MorphTargets = append(pi.MorphTargets, morph.Name)
		}
		info.Primitives = append(info.Primitives, pi)
	}
	webutils.WriteJson(w, info)
}

func HandlerMeshGlb(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	doc, prims, err := extractForFile(file)
	if err != nil {
		log.Printf("Error extracting mesh %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}
	mode, err := serverSettings.MaterialMode()
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	gltfDoc := gltfutils.NewDocument()
	var names utils.RandomNameGenerator
	name := doc.Name
	if name == "" {
		name = names.RandomName()
	}
	meshIndex := gltfutils.AddMesh(gltfDoc, name, prims, mode, &names)
	gltfutils.AddMeshNode(gltfDoc, meshIndex, name)

	var buf bytes.Buffer
	if err := gltfutils.ExportBinary(&buf, gltfDoc); err != nil {
		log.Printf("Failed to encode gltf: %v", err)
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, strings.TrimSuffix(filepath.Base(file), ".json")+".glb")
}
