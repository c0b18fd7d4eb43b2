// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mlnoga/stereoaw/internal/img"
	"github.com/mlnoga/stereoaw/internal/match"
	"github.com/mlnoga/stereoaw/internal/occ"
	"github.com/mlnoga/stereoaw/internal/pipeline"
)

// Serves the disparity pipeline over HTTP on the given address
func Serve(addr string) error {
	r:=gin.Default()
	api:=r.Group("/api")
	{
		v1:=api.Group("/v1")
		{
			v1.GET ("/ping",      getPing)
			v1.POST("/disparity", postDisparity)
		}
	}
	return r.Run(addr)
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

func printArgs(logWriter io.Writer, prefix, suffix string, args interface{}) error {
	m, err:=json.MarshalIndent(args, "", "  ")
	if err!=nil { return err }
	fmt.Fprintf(logWriter, "%s%s%s", prefix, string(m), suffix)
	return nil
}

type postDisparityArgs struct {
	Im1       string                `json:"im1"`
	Im2       string                `json:"im2"`
	DispMin   int                   `json:"dispMin"`
	DispMax   int                   `json:"dispMax"`
	Disparity *match.ParamDisparity `json:"disparity"`
	Occlusion *occ.ParamOcclusion   `json:"occlusion"`
	Comb      string                `json:"comb"`
	Sense     int                   `json:"sense"`
	Threads   int                   `json:"threads"`
	OutPrefix string                `json:"outPrefix"`
}

// Returns true if a path is considered safe, i.e. not an absolute path,
// and doesn't contain the ".." characters to change to a parent directory
func isPathAllowed(p string) bool {
	if filepath.IsAbs(p) { return false }          // relative paths only
	if strings.Contains(p, "..") { return false }  // no going outside the tree
	return true
}

func postDisparity(c *gin.Context) {
	logWriter:=c.Writer
	args:=postDisparityArgs{
		Disparity: match.NewParamDisparity(),
		Occlusion: occ.NewParamOcclusion(),
		Comb:      "mult",
		OutPrefix: "disparity",
	}
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if args.Im1=="" || args.Im2=="" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "im1 and im2 are required"})
		return
	}
	for _, p:=range []string{args.Im1, args.Im2, args.OutPrefix} {
		if !isPathAllowed(p) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "path outside current directory tree"})
			return
		}
	}
	comb, err:=match.ParseComb(args.Comb)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sense, err:=occ.ParseSense(args.Sense)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	header:=logWriter.Header()
	header.Set("Content-Type", "text/plain")
	logWriter.WriteHeader(http.StatusOK)

	if err:=printArgs(logWriter, "Arguments:\n", "\n", args); err!=nil {
		fmt.Fprintf(logWriter, "Error printing arguments: %s\n", err.Error())
		return
	}

	im1, err:=img.LoadColor(args.Im1)
	if err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
		return
	}
	im2, err:=img.LoadColor(args.Im2)
	if err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
		return
	}

	cfg:=&pipeline.Config{
		DispMin:   args.DispMin,
		DispMax:   args.DispMax,
		Disparity: args.Disparity,
		Occlusion: args.Occlusion,
		Comb:      comb,
		Sense:     sense,
		Threads:   args.Threads,
	}
	res, err:=pipeline.Run(im1, im2, cfg, logWriter)
	if err==nil {
		err=res.Save(args.OutPrefix, args.DispMin, args.DispMax, logWriter)
	}
	if err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
	}
	logWriter.(http.Flusher).Flush()
}
