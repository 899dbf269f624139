package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/meshkit/gltf_mesh_exporter/config"
	"github.com/meshkit/gltf_mesh_exporter/mesh"
	"github.com/meshkit/gltf_mesh_exporter/meshfile"
	"github.com/meshkit/gltf_mesh_exporter/utils"
	"github.com/meshkit/gltf_mesh_exporter/utils/gltfutils"
	"github.com/meshkit/gltf_mesh_exporter/web"
)

func exportOne(meshPath, outPath string, settings config.Settings, dump bool) error {
	doc, err := meshfile.Load(meshPath)
	if err != nil {
		return err
	}
	meshSettings, err := settings.ToMesh()
	if err != nil {
		return err
	}

	prims := mesh.ExtractPrimitives(doc, doc, nil, meshSettings, &mesh.Logger{Writer: os.Stdout})
	if dump {
		utils.Dump(prims)
	}

	gltfDoc := gltfutils.NewDocument()
	var names utils.RandomNameGenerator
	name := doc.Name
	if name == "" {
		name = names.RandomName()
	}
	meshIndex := gltfutils.AddMesh(gltfDoc, name, prims, meshSettings.Materials, &names)
	gltfutils.AddMeshNode(gltfDoc, meshIndex, name)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return gltfutils.ExportBinary(f, gltfDoc)
}

func main() {
	var addr, dir, meshPath, settingsPath, out string
	var dump bool
	flag.StringVar(&addr, "i", "", "Address of preview server, e.g. :8000")
	flag.StringVar(&dir, "dir", ".", "Directory with mesh .json files (server mode)")
	flag.StringVar(&meshPath, "mesh", "", "Path to a mesh .json file to export")
	flag.StringVar(&settingsPath, "settings", "", "Path to export settings .yaml, defaults apply if empty")
	flag.StringVar(&out, "out", "", "Output .glb path, defaults to the mesh path with .glb")
	flag.BoolVar(&dump, "dump", false, "Dump extracted primitives to stdout")
	flag.Parse()

	settings := config.Default()
	if settingsPath != "" {
		s, err := config.Load(settingsPath)
		if err != nil {
			log.Fatal(err)
		}
		settings = s
	}
	config.SetCurrent(settings)

	if addr != "" {
		if err := web.StartServer(addr, dir, settings); err != nil {
			log.Fatal(err)
		}
		return
	}

	if meshPath == "" {
		flag.PrintDefaults()
		return
	}
	if out == "" {
		out = strings.TrimSuffix(meshPath, ".json") + ".glb"
	}
	if err := exportOne(meshPath, out, settings, dump); err != nil {
		log.Fatal(err)
	}
}
