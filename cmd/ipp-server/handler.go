package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comparative-genomics/ipp"
	"github.com/comparative-genomics/ipp/analytics"
)

func openLocal(path string) (*os.File, error) {
	return os.Open(path)
}

// pathHops walks ShortestPath's PrevSpecies chain from qrySpecies back to
// refSpecies and returns the number of hops in the winning path, as opposed
// to the size of the whole discovered best-path map.
func pathHops(result ipp.CoordProjection, refSpecies, qrySpecies string) int {
	hops := 0
	species := qrySpecies
	for species != refSpecies {
		entry, ok := result.ShortestPath[species]
		if !ok {
			break
		}
		species = entry.PrevSpecies
		hops++
	}
	return hops
}

// newProjectHandler returns a gin handler for GET /project, expecting
// query parameters ref, qry, chrom and loc, and writing the score,
// chromosome name and location of the best path to qry as JSON.
func newProjectHandler(engine *ipp.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		track := analytics.TrackerFromContext(c.Request.Context())

		refSpecies := c.Query("ref")
		qrySpecies := c.Query("qry")
		chromName := c.Query("chrom")
		locParam := c.Query("loc")

		if refSpecies == "" || qrySpecies == "" || chromName == "" || locParam == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ref, qry, chrom and loc are all required"})
			return
		}

		loc, err := strconv.ParseUint(locParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "loc must be an unsigned integer"})
			return
		}

		chromID, err := engine.ChromID(chromName)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		track(analytics.ProjectionRequested(refSpecies, qrySpecies))

		result := engine.ProjectCoord(refSpecies, qrySpecies, ipp.Coords{Chrom: chromID, Loc: uint32(loc)})
		if best, ok := result.ShortestPath[qrySpecies]; ok {
			track(analytics.ProjectionSucceeded(refSpecies, qrySpecies, pathHops(result, refSpecies, qrySpecies)))
			chromName, err := engine.ChromName(best.Coords.Chrom)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"score": best.Score,
				"chrom": chromName,
				"loc":   best.Coords.Loc,
			})
			return
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "no path found between the requested species"})
	}
}
