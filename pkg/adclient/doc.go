// Package adclient provides the entry point for constructing a MediaForge
// platform API client that implements the adapi.Client interface.
//
// It layers endpoint normalization, trust-store installation, and the
// cookie-session transport on top of the entity operations defined in the
// adapi package. Most applications should import adclient to build a
// client, then use the returned adapi.Client to reach the bound entity
// clients, for example Advertisers(), Campaigns(), Segments().
package adclient
