// Package scraper fetches fbref.com pages and parses them into goquery
// documents.
//
// Responses are decoded according to their Content-Encoding (gzip, deflate or
// brotli). Sports-reference sites ship some tables inside HTML comments, so by
// default the comment markers are stripped before parsing to expose them.
// Optionally, robots.txt is consulted before each request.
package scraper
