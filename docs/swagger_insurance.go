package docs

// @title           Agro Insurance API
// @version         1.0
// @description     Clients, crops and policies of an agricultural insurer, georeferenced points with their climate history, and a nearest point lookup by great-circle distance.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
